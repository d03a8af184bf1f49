package model

type TermSource int

const (
	SourcePathway TermSource = iota
	SourceDisease
	SourceMetabolite
	SourceUnknown
)

func (s TermSource) String() string {
	switch s {
	case SourcePathway:
		return "pathway"
	case SourceDisease:
		return "disease"
	case SourceMetabolite:
		return "metabolite"
	default:
		return "unknown"
	}
}

func NewTermSource(field string) TermSource {
	switch field {
	case "pathway":
		return SourcePathway
	case "disease":
		return SourceDisease
	case "metabolite":
		return SourceMetabolite
	default:
		return SourceUnknown
	}
}

// Node colors match the ones used by the network view.
const (
	ColorGene       = "rgb(169,169,169)"
	ColorProtein    = "rgb(255,215,0)"
	ColorPathway    = "rgb(135,206,250)"
	ColorMetabolite = "rgb(152,251,152)"
	ColorDisease    = "rgb(240,128,128)"
)

// Color returns the node color for terms of this source.
func (s TermSource) Color() string {
	switch s {
	case SourcePathway:
		return ColorPathway
	case SourceDisease:
		return ColorDisease
	case SourceMetabolite:
		return ColorMetabolite
	default:
		return "gray"
	}
}

func (s TermSource) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *TermSource) UnmarshalText(b []byte) error {
	*s = NewTermSource(string(b))
	return nil
}
