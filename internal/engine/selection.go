package engine

// selection is either Uncontrolled or Controlled
type selection interface {
	current() string
}

// Uncontrolled selection is owned by the engine
type Uncontrolled struct {
	Value string
}

func (s *Uncontrolled) current() string { return s.Value }

// Controlled selection is owned by a collaborator. The engine never writes Value
// itself; it asks for changes through OnChange and waits for SetControlledValue.
type Controlled struct {
	Value    string
	OnChange func(value string)
}

func (s *Controlled) current() string { return s.Value }
