package printer

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"front-auditor/internal/apperr"
	"front-auditor/lib/telemetry"
)

const report_printer_print = "printer.print"

// FilePlaceholder is replaced by the path of the file to print. When a
// command has no placeholder the path is appended as the last argument.
const FilePlaceholder = "{file}"

type Printer interface {
	Print(ctx context.Context, path string) error
}

// DefaultCommand returns the print command for the current OS.
func DefaultCommand() []string {
	if runtime.GOOS == "windows" {
		return []string{
			"powershell", "-NoProfile", "-Command",
			"Start-Process -FilePath '" + FilePlaceholder + "' -Verb Print",
		}
	}
	return []string{"lp", "-o", "sides=one-sided", FilePlaceholder}
}

// CommandPrinter prints by running an external command once per file.
type CommandPrinter struct {
	command []string
	tel     telemetry.API
}

func NewCommandPrinter(command []string, tel telemetry.API) CommandPrinter {
	if len(command) == 0 {
		command = DefaultCommand()
	}
	return CommandPrinter{command: command, tel: tel}
}

func (p CommandPrinter) args(path string) []string {
	args := make([]string, 0, len(p.command)+1)
	replaced := false
	for _, arg := range p.command {
		if strings.Contains(arg, FilePlaceholder) {
			arg = strings.ReplaceAll(arg, FilePlaceholder, path)
			replaced = true
		}
		args = append(args, arg)
	}
	if !replaced {
		args = append(args, path)
	}
	return args
}

func (p CommandPrinter) Print(ctx context.Context, path string) error {
	_, err := os.Stat(path)
	if err != nil {
		return apperr.New(apperr.KindReportNotFound, "print", err)
	}

	args := p.args(path)
	p.tel.ReportDebug("printing", path, args[0])

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Stderr = &stderr
	err = cmd.Run()
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			err = fmt.Errorf("%w: %s", err, msg)
		}
		p.tel.ReportBroken(report_printer_print, err, path)
		return apperr.New(apperr.KindPrint, "print", err)
	}
	return nil
}
