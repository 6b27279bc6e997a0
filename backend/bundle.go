package backend

import (
	"context"

	"gioui.org/app"
	"git.sr.ht/~gioverse/skel/stream"
)

// WindowState is the backend state shared by one window.
type WindowState struct {
	Datasource *Datasource
	Controller *stream.Controller
}

func NewWindowState(ctx context.Context, ds *Datasource, win *app.Window) WindowState {
	return WindowState{
		Datasource: ds,
		Controller: stream.NewController(ctx, win.Invalidate),
	}
}
