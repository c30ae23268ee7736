package lattice

// Triad is a poetic triad: two concepts, the tension of their hybridation and
// the synthesis that balances it.
type Triad struct {
	Concept1  string `json:"concept_1"`
	Concept2  string `json:"concept_2"`
	Tension   Vector `json:"tension"`
	Synthesis Vector `json:"synthesis"`
	Balanced  bool   `json:"balanced"`
}

// DefaultConcepts names the three base vectors.
func DefaultConcepts() map[Vector]string {
	return map[Vector]string{
		Thesis:     "Interrogation",
		Antithesis: "Négation",
		Synthesis:  "Affirmation",
	}
}

// NewTriad hybridizes v1 and v2 and resolves the result. Vectors without an
// entry in concepts are labelled with their String form; concepts may be nil.
func NewTriad(v1, v2 Vector, concepts map[Vector]string) Triad {
	tension := Hybridize(v1, v2)
	synthesis := Resolve(tension)

	return Triad{
		Concept1:  label(v1, concepts),
		Concept2:  label(v2, concepts),
		Tension:   tension,
		Synthesis: synthesis,
		Balanced:  synthesis.Balanced(),
	}
}

func label(v Vector, concepts map[Vector]string) string {
	if name, ok := concepts[v]; ok {
		return name
	}
	return v.String()
}
