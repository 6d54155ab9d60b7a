package operation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"front-auditor/internal/apperr"
	"front-auditor/internal/menu"
	"front-auditor/internal/outcome"
	"front-auditor/internal/portal"
)

func (m *Manager) login(ctx context.Context) outcome.Result {
	username, err := m.prompter.Input(ctx, "Ingresa tu nombre de usuario:")
	if err != nil {
		return promptFailed(err)
	}
	password, err := m.prompter.Password(ctx, "Ingresa tu contraseña:")
	if err != nil {
		return promptFailed(err)
	}

	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return outcome.FromError(apperr.New(apperr.KindInvalidCredentials, "login", errors.New("empty credentials")))
	}

	_, err = m.portal.Login(ctx, portal.Credentials{Username: username, Password: password})
	if err != nil {
		return outcome.FromError(err)
	}
	return outcome.Success(fmt.Sprintf("Sesión iniciada como %s.", username))
}

func promptFailed(err error) outcome.Result {
	if errors.Is(err, menu.ErrAborted) {
		return outcome.Informative("Inicio de sesión cancelado.")
	}
	return outcome.FromError(err)
}
