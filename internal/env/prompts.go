package env

import (
	"context"
	"fmt"
	"strings"

	"github.com/donaldgifford/swiftfmtenv/internal/resolver"
)

// Prompt actions.
const (
	ActionReportIssue   = "Report issue"
	ActionConfigurePath = "Configure path"
	ActionResetPath     = "Reset path"
)

// ShowErrorWithReport shows err and offers to report it or to configure
// the swift-format path.
func (e *Environment) ShowErrorWithReport(ctx context.Context, err error) error {
	action, ok, showErr := e.ShowError(ctx, err.Error(), ActionReportIssue, ActionConfigurePath)
	if showErr != nil {
		return showErr
	}
	if !ok {
		return nil
	}

	switch action {
	case ActionReportIssue:
		return e.ReportIssueForError(ctx, err)
	case ActionConfigurePath:
		e.ConfigureSwiftFormatPath()
	}
	return nil
}

// ShowMissingFormatterWarning tells the user cmd could not be started and
// offers to reset or configure the path setting.
func (e *Environment) ShowMissingFormatterWarning(ctx context.Context, cmd resolver.Command) error {
	message := fmt.Sprintf("swift-format not found at %q. Install it or configure its path.", strings.Join(cmd, " "))
	action, ok, err := e.ShowWarning(ctx, message, ActionResetPath, ActionConfigurePath)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	switch action {
	case ActionResetPath:
		return e.ResetSwiftFormatPath()
	case ActionConfigurePath:
		e.ConfigureSwiftFormatPath()
	}
	return nil
}
