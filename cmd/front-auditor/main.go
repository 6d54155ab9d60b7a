package main

import (
	"context"

	"front-auditor/cmd/front-auditor/commands"
	"front-auditor/lib/osutil"
)

func main() {
	ctx, cancel := osutil.SignalContext(context.Background())
	defer cancel()
	commands.ExecuteContext(ctx)
}
