package models

type Severity int

// Severities follow the CMS flash message levels.
const (
	SeverityNotice  Severity = -2
	SeverityInfo    Severity = -1
	SeverityOK      Severity = 0
	SeverityWarning Severity = 1
	SeverityError   Severity = 2
)

func (s Severity) String() string {
	switch s {
	case SeverityNotice:
		return "notice"
	case SeverityInfo:
		return "info"
	case SeverityOK:
		return "ok"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

type FlashMessage struct {
	Severity Severity `json:"severity"`
	Title    string   `json:"title"`
	Message  string   `json:"message"`
}
