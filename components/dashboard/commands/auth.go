package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"

	"github.com/storelens/storelens/pkg/backend"
)

type authenticator interface {
	Login(ctx context.Context, creds backend.Credentials) (backend.Session, error)
	Register(ctx context.Context, reg backend.Registration) (backend.Session, error)
}

type mountService interface {
	Mount(ctx context.Context) error
	Logout(ctx context.Context) error
}

// LoginCommand authenticates a tenant and mounts the dashboard on success, so
// transports get a ready shell from a single invocation.
type LoginCommand struct {
	guard     authenticator
	shell     mountService
	telemetry Telemetry
}

// NewLoginCommand creates a command instance.
func NewLoginCommand(guard authenticator, shell mountService, telemetry Telemetry) *LoginCommand {
	return &LoginCommand{guard: guard, shell: shell, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[backend.Credentials] = (*LoginCommand)(nil)

// Execute logs in and mounts the shell. A failed login leaves any previous
// session untouched.
func (c *LoginCommand) Execute(ctx context.Context, creds backend.Credentials) error {
	if c.guard == nil {
		return errors.New("login command requires session guard")
	}
	session, err := c.guard.Login(ctx, creds)
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, EventLogin, map[string]any{
		"tenant": session.Tenant.ID,
	})
	if c.shell == nil {
		return nil
	}
	return c.shell.Mount(ctx)
}

// RegisterCommand provisions a new tenant and mounts the dashboard.
type RegisterCommand struct {
	guard     authenticator
	shell     mountService
	telemetry Telemetry
}

// NewRegisterCommand creates a command instance.
func NewRegisterCommand(guard authenticator, shell mountService, telemetry Telemetry) *RegisterCommand {
	return &RegisterCommand{guard: guard, shell: shell, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[backend.Registration] = (*RegisterCommand)(nil)

// Execute registers the store and mounts the shell.
func (c *RegisterCommand) Execute(ctx context.Context, reg backend.Registration) error {
	if c.guard == nil {
		return errors.New("register command requires session guard")
	}
	session, err := c.guard.Register(ctx, reg)
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, EventRegister, map[string]any{
		"tenant": session.Tenant.ID,
		"shop":   reg.ShopDomain,
	})
	if c.shell == nil {
		return nil
	}
	return c.shell.Mount(ctx)
}

// LogoutInput is the empty message for LogoutCommand.
type LogoutInput struct{}

// LogoutCommand ends the session and returns the shell to the entry screen.
type LogoutCommand struct {
	shell     mountService
	telemetry Telemetry
}

// NewLogoutCommand creates a command instance.
func NewLogoutCommand(shell mountService, telemetry Telemetry) *LogoutCommand {
	return &LogoutCommand{shell: shell, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[LogoutInput] = (*LogoutCommand)(nil)

// Execute clears the session. Logging out without a session is not an error.
func (c *LogoutCommand) Execute(ctx context.Context, _ LogoutInput) error {
	if c.shell == nil {
		return errors.New("logout command requires shell")
	}
	if err := c.shell.Logout(ctx); err != nil {
		return err
	}
	c.telemetry.Record(ctx, EventLogout, nil)
	return nil
}
