package flow

// Choice is one selectable option offered to the user. Data is an opaque
// tag the front end echoes back when the option is picked.
type Choice struct {
	Label string
	Data  string
}

// Reply is the render instruction produced for one handled event. A zero
// Reply means the event required no response.
type Reply struct {
	Text    string
	Choices [][]Choice
}

// Empty reports whether there is nothing to render.
func (r Reply) Empty() bool {
	return r.Text == "" && len(r.Choices) == 0
}

// Choice data tags the machine emits and expects back.
const (
	DataCancel       = "cancel_action"
	DataTypePositive = "message_type_positive"
	DataTypeNegative = "message_type_negative"
	DataCreateCouple = "create_couple"
	DataMyCouples    = "my_couples"
	DataMainMenu     = "back_to_main"
)
