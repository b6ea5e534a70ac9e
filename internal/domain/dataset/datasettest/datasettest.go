// Package datasettest provides small datasets for tests.
package datasettest

import (
	"context"
	"strings"

	"github.com/okian/sisu/internal/domain/dataset"
)

// ScenarioCSV is a three-row admission table in the official export layout.
const ScenarioCSV = `NU_ANO;NO_CURSO;SG_UF_IES;SG_IES;QT_VAGAS_CONCORRENCIA;NU_NOTACORTE_CONCORRIDA
2023;Medicina;SP;USP;40;890,5
2023;Medicina;SP;UNICAMP;35;870,0
2023;Direito;RJ;UFRJ;60;750,0
`

// WideCSV adds more courses, states, a missing score and a non-numeric score.
const WideCSV = ScenarioCSV + `2023;Medicina;RJ;UFRJ;50;880,25
2023;Medicina;MG;UFMG;45;
2023;Direito;SP;USP;70;810,0
2023;Direito;SP;UNESP;30;n/d
2023;Engenharia;MG;UFMG;;701,75
2023;Engenharia;SP;UNICAMP;80;799,9
`

// Scenario returns the three-row dataset.
func Scenario() *dataset.Dataset {
	return mustRead(ScenarioCSV)
}

// Wide returns the nine-row dataset.
func Wide() *dataset.Dataset {
	return mustRead(WideCSV)
}

func mustRead(csv string) *dataset.Dataset {
	ds, err := dataset.Read(context.Background(), strings.NewReader(csv))
	if err != nil {
		panic(err)
	}
	return ds
}
