package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure by how it is presented to the user.
type Kind int

const (
	KindUnknown Kind = iota
	KindTransport
	KindDecompress
	KindReportNotFound
	KindSessionExpired
	KindInvalidCredentials
	KindWrite
	KindDirectoryCreate
	KindPrint
	KindInvalidChoice
	KindInvalidMenuType
)

type Status string

const (
	StatusError       Status = "error"
	StatusInformative Status = "informative"
)

type kindInfo struct {
	name    string
	code    int
	status  Status
	message string
}

var kinds = map[Kind]kindInfo{
	KindUnknown:            {"unknown", 1, StatusError, "Ocurrió un error inesperado."},
	KindTransport:          {"transport", 100, StatusError, "No hay conexión a Internet."},
	KindDecompress:         {"decompress", 300, StatusError, "No se pudo descomprimir el archivo."},
	KindReportNotFound:     {"report not found", 320, StatusError, "No se encontró el reporte solicitado."},
	KindSessionExpired:     {"session expired", 400, StatusInformative, "Sesion expirada, vuelve a iniciar sesion."},
	KindInvalidCredentials: {"invalid credentials", 410, StatusError, "Usuario o contraseña incorrectos."},
	KindWrite:              {"write", 500, StatusError, "Ocurrió un error tratando de descargar el archivo."},
	KindDirectoryCreate:    {"directory create", 600, StatusError, "No se pudo crear el directorio de reportes."},
	KindPrint:              {"print", 700, StatusError, "No se pudo imprimir el archivo."},
	KindInvalidChoice:      {"invalid choice", 800, StatusError, "INVALID OPERATION"},
	KindInvalidMenuType:    {"invalid menu type", 810, StatusError, "Tipo de menu invalido."},
}

func (k Kind) info() kindInfo {
	info, ok := kinds[k]
	if !ok {
		return kinds[KindUnknown]
	}
	return info
}

func (k Kind) String() string { return k.info().name }
func (k Kind) Code() int { return k.info().code }
func (k Kind) Status() Status { return k.info().status }
func (k Kind) Message() string { return k.info().message }

// Error is a failure tagged with a Kind. Op names the step that failed and
// Err is the underlying cause, both optional.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Op != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, e.Err)
	case e.Op != "":
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	case e.Err != nil:
		return fmt.Sprintf("%s: %s", e.Kind, e.Err)
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so sentinels work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Op == "" && t.Err == nil
}

var (
	ErrTransport          = &Error{Kind: KindTransport}
	ErrDecompress         = &Error{Kind: KindDecompress}
	ErrReportNotFound     = &Error{Kind: KindReportNotFound}
	ErrSessionExpired     = &Error{Kind: KindSessionExpired}
	ErrInvalidCredentials = &Error{Kind: KindInvalidCredentials}
	ErrWrite              = &Error{Kind: KindWrite}
	ErrDirectoryCreate    = &Error{Kind: KindDirectoryCreate}
	ErrPrint              = &Error{Kind: KindPrint}
	ErrInvalidChoice      = &Error{Kind: KindInvalidChoice}
	ErrInvalidMenuType    = &Error{Kind: KindInvalidMenuType}
)

func New(kind Kind, op string, err error) error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or
// KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
