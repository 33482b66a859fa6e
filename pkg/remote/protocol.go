package remote

import "github.com/withgalaxy/responsive/pkg/breakpoint"

type MessageType string

const (
	// server -> client
	MsgTypeConnect MessageType = "connect"
	MsgTypeScreens MessageType = "screens"
	MsgTypeError   MessageType = "error"

	// client -> server
	MsgTypeViewport MessageType = "viewport"
)

type Message struct {
	Type    MessageType           `json:"type"`
	Session string                `json:"session,omitempty"`
	Width   int                   `json:"width,omitempty"`
	Height  int                   `json:"height,omitempty"`
	Screens breakpoint.Screens    `json:"screens,omitempty"`
	Current breakpoint.Breakpoint `json:"current,omitempty"`
	Error   string                `json:"error,omitempty"`
}

func screensMessage(screens breakpoint.Screens) Message {
	current, _ := screens.Current()
	return Message{
		Type:    MsgTypeScreens,
		Screens: screens,
		Current: current,
	}
}
