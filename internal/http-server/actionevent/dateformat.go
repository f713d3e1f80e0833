package actionevent

import "events2/internal/lib/propertymapping"

const DefaultDateFormat = "02.01.2006"

// SetDateFormatForPropertyMapping lets management forms send event dates
// as day.month.year.
type SetDateFormatForPropertyMapping struct {
	DateFormat string
}

func NewSetDateFormatForPropertyMapping() *SetDateFormatForPropertyMapping {
	return &SetDateFormatForPropertyMapping{DateFormat: DefaultDateFormat}
}

var dateFormatActions = map[string][]string{
	"Management": {"create", "update"},
}

func (l *SetDateFormatForPropertyMapping) Handle(e *PreProcessControllerActionEvent) {
	if !isAllowed(dateFormatActions, e) {
		return
	}

	arg := e.Arguments.Argument("event")
	if arg == nil {
		return
	}

	pmc := arg.PropertyMappingConfiguration()
	l.setDatePropertyFormat("eventBegin", pmc)
	l.setDatePropertyFormat("eventEnd", pmc)
}

func (l *SetDateFormatForPropertyMapping) setDatePropertyFormat(property string, pmc *propertymapping.Configuration) {
	pmc.ForProperty(property).SetOption(propertymapping.OptionDateFormat, l.DateFormat)
}

func isAllowed(allowed map[string][]string, e *PreProcessControllerActionEvent) bool {
	for _, action := range allowed[e.Controller] {
		if action == e.Action {
			return true
		}
	}

	return false
}
