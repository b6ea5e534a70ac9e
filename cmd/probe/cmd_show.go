package main

import (
	"github.com/okian/sisu/internal/domain/model"
	"github.com/okian/sisu/internal/probe"
	"github.com/spf13/cobra"
)

var showFlags struct {
	url         string
	course      []string
	state       []string
	institution []string
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Run one update and print the three series",
	RunE:  runShow,
}

func init() {
	f := showCmd.Flags()
	f.StringVar(&showFlags.url, "url", probe.DefaultBaseURL, "Base URL of the service")
	f.StringSliceVar(&showFlags.course, "course", nil, "Course name (repeatable)")
	f.StringSliceVar(&showFlags.state, "state", nil, "State code (repeatable)")
	f.StringSliceVar(&showFlags.institution, "institution", nil, "Institution code (repeatable)")
}

func runShow(cmd *cobra.Command, _ []string) error {
	sel := model.Selection{
		Course:      model.NewValues(showFlags.course...),
		State:       model.NewValues(showFlags.state...),
		Institution: model.NewValues(showFlags.institution...),
	}
	cfg := probe.Config{BaseURL: showFlags.url, Timeout: probe.DefaultTimeout}
	return probe.Show(cmd.Context(), cfg, sel, cmd.OutOrStdout())
}
