package launcher

import (
	"context"
	"os/exec"
)

// interpreterStrategy launches a script through an external interpreter
// executable, with the script path as the interpreter's first argument.
type interpreterStrategy struct {
	bin string
}

// NewInterpreterStrategy returns a strategy invoking scripts via bin
// (e.g. "python3", "ruby", "sh").
func NewInterpreterStrategy(bin string) Strategy {
	return &interpreterStrategy{bin: bin}
}

func (s *interpreterStrategy) Name() string {
	return s.bin
}

func (s *interpreterStrategy) Launch(ctx context.Context, spec Spec) (*Launch, error) {
	args := append([]string{spec.Script}, spec.Args...)
	cmd := exec.CommandContext(ctx, s.bin, args...)

	if err := setupCommand(cmd, spec); err != nil {
		return nil, err
	}

	return &Launch{Cmd: cmd}, nil
}
