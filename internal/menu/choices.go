package menu

// Menu choices as shown to the user.
const (
	ChoiceLogin    = "Iniciar Sesion"
	ChoiceCheckPIT = "Revisar PIT"
	ChoiceAudit    = "Auditoria"
	ChoiceReports  = "Reportes"
	ChoiceExit     = "Exit"

	ChoiceCorte = "Corte"
	ChoiceCobro = "Cobro por operador"
	ChoiceBack  = "Volver"

	ChoiceYes = "Si"
	ChoiceNo  = "No"
)

var (
	HomeOptions   = []string{ChoiceLogin, ChoiceCheckPIT, ChoiceAudit, ChoiceReports, ChoiceExit}
	ReportOptions = []string{ChoiceCorte, ChoiceCobro, ChoiceAudit, ChoiceBack}
)

const (
	NoSessionLabel   = "Sin sesión"
	LoginFirstNotice = "Inicia sesión antes de realizar cualquier acción."
)
