package domain

// Command is a single subprocess invocation.
type Command struct {
	Name string
	Args []string
	// Dir is the working directory of the subprocess.
	Dir string
	// Env holds KEY=VALUE overrides applied on top of the inherited
	// environment for this subprocess only. PATH entries are prepended.
	Env []string
	// Capture sends stdout only to the caller's writer instead of the log.
	Capture bool
}

// Argv returns the full argument vector including the program name.
func (c Command) Argv() []string {
	argv := make([]string, 0, len(c.Args)+1)
	argv = append(argv, c.Name)
	return append(argv, c.Args...)
}
