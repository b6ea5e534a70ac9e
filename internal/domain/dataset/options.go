package dataset

// Option configures Load and Read.
type Option func(*options)

type options struct {
	delimiter rune
	decimal   rune
	encoding  string
	columns   Columns
}

func defaultOptions() options {
	return options{
		delimiter: ';',
		decimal:   ',',
		encoding:  "utf-8",
		columns:   DefaultColumns(),
	}
}

// WithDelimiter sets the field separator.
func WithDelimiter(r rune) Option {
	return func(o *options) {
		if r != 0 {
			o.delimiter = r
		}
	}
}

// WithDecimalSeparator sets the decimal mark of numeric cells.
func WithDecimalSeparator(r rune) Option {
	return func(o *options) {
		if r != 0 {
			o.decimal = r
		}
	}
}

// WithEncoding sets the source text encoding.
func WithEncoding(name string) Option {
	return func(o *options) {
		if name != "" {
			o.encoding = name
		}
	}
}

// WithColumns overrides the required column names.
func WithColumns(c Columns) Option {
	return func(o *options) {
		o.columns = c
	}
}
