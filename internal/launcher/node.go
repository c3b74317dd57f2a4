package launcher

import (
	"context"
	"fmt"
	"os"
	"os/exec"
)

// nodeChannelFD is the file descriptor number the child's runtime expects
// its message channel on. ExtraFiles start at fd 3.
const nodeChannelFD = 3

// nodeStrategy launches JavaScript targets with the node runtime in
// fork style: the child gets a message channel on a dedicated descriptor,
// advertised via NODE_CHANNEL_FD, over which the supervisor can send the
// shutdown notification.
type nodeStrategy struct {
	bin string
}

// NewNodeStrategy returns the strategy for node scripts. An empty bin
// defaults to "node".
func NewNodeStrategy(bin string) Strategy {
	if bin == "" {
		bin = "node"
	}
	return &nodeStrategy{bin: bin}
}

func (s *nodeStrategy) Name() string {
	return s.bin
}

func (s *nodeStrategy) Launch(ctx context.Context, spec Spec) (*Launch, error) {
	args := append([]string{spec.Script}, spec.Args...)
	cmd := exec.CommandContext(ctx, s.bin, args...)

	if err := setupCommand(cmd, spec); err != nil {
		return nil, err
	}

	childEnd, parentEnd, err := os.Pipe()
	if err != nil {
		return nil, fmt.Errorf("failed to create message channel: %w", err)
	}

	cmd.ExtraFiles = []*os.File{childEnd}
	cmd.Env = append(cmd.Env, fmt.Sprintf("NODE_CHANNEL_FD=%d", nodeChannelFD))

	return &Launch{
		Cmd:        cmd,
		IPC:        parentEnd,
		childFiles: []*os.File{childEnd},
	}, nil
}
