// Package command holds the registry of addressable processing commands.
// A command manages the parameters for, and eventually launches, one step of
// the reduction pipeline; here only its name and endpoint are modeled.
package command

// Command is a single addressable operation.
type Command struct {
	Name        string
	Description string
}

// Record is the wire form of a command, endpoint included.
type Record struct {
	Name        string `json:"name"`
	Endpoint    string `json:"endpoint"`
	Description string `json:"description,omitempty"`
}

// Record converts the command to its serializable form.
func (c Command) Record() Record {
	return Record{
		Name:        c.Name,
		Endpoint:    Endpoint(c.Name),
		Description: c.Description,
	}
}

// Endpoint returns the route a named command is served under.
func Endpoint(name string) string {
	return "/v1/commands/" + name
}

// Builtins returns the stock command set of the reduction pipeline.
func Builtins() []Command {
	return []Command{
		{Name: "dials.import"},
		{Name: "dials.find_spots"},
		{Name: "dials.refine"},
		{Name: "dials.refine_bravais_settings"},
		{Name: "dials.reindex"},
		{Name: "dials.integrate"},
		{Name: "dials.symmetry"},
		{Name: "dials.scale"},
		{Name: "export"},
		{Name: "mask", Description: "Generate and apply a mask"},
	}
}
