package dto

// Custom ids of the buttons posted under the board.
const (
	ButtonLogin  = "login_button"
	ButtonLogout = "logout_button"
)

type InteractionInput struct {
	UserID string
}

type SectionOutput struct {
	Name  string
	Value string
}

type BoardOutput struct {
	Title       string
	Description string
	Sections    []SectionOutput
	Footer      string
}

// ReplyOutput is what the user who pressed a button sees. Board is set when
// the shared display should be refreshed.
type ReplyOutput struct {
	Message string
	OK      bool
	Board   *BoardOutput
}
