package organizer

// Summary counts what a run did. Counters are advisory.
type Summary struct {
	Placed          int
	SkippedExisting int
	Overwritten     int
	Versioned       int
	MissingSources  int
	Failed          int

	Groups       int
	BothSides    int
	NotaOnly     int
	BoletoOnly   int
	Unidentified int
	LinkedPairs  int
}

func (s *Summary) record(o Outcome) {
	switch o {
	case Placed:
		s.Placed++
	case SkippedExisting:
		s.SkippedExisting++
	case Overwritten:
		s.Overwritten++
	case Versioned:
		s.Versioned++
	case MissingSource:
		s.MissingSources++
	default:
		s.Failed++
	}
}

// Merge adds other's counters to s.
func (s *Summary) Merge(other Summary) {
	s.Placed += other.Placed
	s.SkippedExisting += other.SkippedExisting
	s.Overwritten += other.Overwritten
	s.Versioned += other.Versioned
	s.MissingSources += other.MissingSources
	s.Failed += other.Failed
	s.Groups += other.Groups
	s.BothSides += other.BothSides
	s.NotaOnly += other.NotaOnly
	s.BoletoOnly += other.BoletoOnly
	s.Unidentified += other.Unidentified
	s.LinkedPairs += other.LinkedPairs
}

// Written is the number of files that reached a destination.
func (s Summary) Written() int {
	return s.Placed + s.Overwritten + s.Versioned
}

// Row is one labelled counter for display.
type Row struct {
	Label string
	Value int
}

// Rows lists the file counters followed by the non-zero grouping counters.
func (s Summary) Rows() []Row {
	rows := []Row{
		{"Placed", s.Placed},
		{"Skipped (already present)", s.SkippedExisting},
		{"Overwritten", s.Overwritten},
		{"Versioned", s.Versioned},
		{"Missing sources", s.MissingSources},
		{"Failed", s.Failed},
	}
	optional := []Row{
		{"Folders", s.Groups},
		{"Folders with boletos and notas", s.BothSides},
		{"Folders with notas only", s.NotaOnly},
		{"Boleto-only identifiers", s.BoletoOnly},
		{"Unidentified files", s.Unidentified},
		{"Linked folder pairs", s.LinkedPairs},
	}
	for _, row := range optional {
		if row.Value != 0 {
			rows = append(rows, row)
		}
	}
	return rows
}
