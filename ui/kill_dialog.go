// Package ui provides the graphical user interface for System Monitor.
// This file contains the end-process confirmation dialog and the
// application picker.
package ui

import (
	"fmt"

	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"github.com/diamondburned/gotk4/pkg/pango"
	"github.com/yllada/system-monitor/common"
	"github.com/yllada/system-monitor/controller"
	"github.com/yllada/system-monitor/monitor"
)

const (
	killDialogTitle   = "End process"
	killDialogMessage = "Ending an application risks losing data.\nAre you sure you want to end the selected application?"
)

// KillDialog asks for confirmation before ending a process.
type KillDialog struct {
	window   *gtk.Window
	resolved bool
}

// showKillDialog asks for confirmation before ending pid. dispatch receives
// at most one KillDialogResolved, closing the window counts as cancel.
func showKillDialog(parent *gtk.Window, pid int, name string, dispatch func(controller.Event)) *KillDialog {
	window := gtk.NewWindow()
	kd := &KillDialog{window: window}
	window.SetTitle(killDialogTitle)
	window.SetTransientFor(parent)
	window.SetModal(true)
	window.SetDefaultSize(380, 160)
	window.SetResizable(false)

	resolve := func(confirmed bool) {
		if kd.resolved {
			return
		}
		kd.resolved = true
		dispatch(controller.KillDialogResolved{Confirmed: confirmed})
	}

	mainBox := gtk.NewBox(gtk.OrientationVertical, 12)
	mainBox.SetMarginTop(common.DialogMargin)
	mainBox.SetMarginBottom(common.DialogMargin)
	mainBox.SetMarginStart(common.DialogMargin)
	mainBox.SetMarginEnd(common.DialogMargin)

	header := gtk.NewBox(gtk.OrientationHorizontal, 12)
	icon := gtk.NewImage()
	icon.SetFromIconName("dialog-warning-symbolic")
	icon.SetPixelSize(48)
	icon.AddCSSClass("kill-warning")
	header.Append(icon)

	msgLabel := gtk.NewLabel(killDialogMessage)
	msgLabel.SetWrap(true)
	msgLabel.SetMaxWidthChars(44)
	msgLabel.SetXAlign(0)
	header.Append(msgLabel)
	mainBox.Append(header)

	if name != "" {
		target := gtk.NewLabel(fmt.Sprintf("%s (pid %d)", name, pid))
		target.AddCSSClass("dim-label")
		target.SetXAlign(0)
		mainBox.Append(target)
	}

	buttonBox := gtk.NewBox(gtk.OrientationHorizontal, 12)
	buttonBox.SetHAlign(gtk.AlignEnd)
	buttonBox.SetMarginTop(12)

	cancelBtn := gtk.NewButtonWithLabel("Cancel")
	cancelBtn.ConnectClicked(func() {
		resolve(false)
		window.Close()
	})
	buttonBox.Append(cancelBtn)

	endBtn := gtk.NewButtonWithLabel("End process")
	endBtn.AddCSSClass("destructive-action")
	endBtn.ConnectClicked(func() {
		resolve(true)
		window.Close()
	})
	buttonBox.Append(endBtn)
	mainBox.Append(buttonBox)

	window.ConnectCloseRequest(func() bool {
		resolve(false)
		return false
	})

	window.SetChild(mainBox)
	window.SetDefaultWidget(cancelBtn)
	window.Show()
	return kd
}

// Dismiss closes the dialog without resolving the kill flow. A dialog that
// was already answered is left alone.
func (kd *KillDialog) Dismiss() {
	if kd.resolved {
		return
	}
	kd.resolved = true
	kd.window.Close()
}

// KillPicker lists running applications so the user can pick one to end.
type KillPicker struct {
	window   *gtk.Window
	listBox  *gtk.ListBox
	dispatch func(controller.Event)
}

// newKillPicker opens the picker over parent with the given applications.
func newKillPicker(parent *gtk.Window, apps []monitor.ProcessInfo, dispatch func(controller.Event)) *KillPicker {
	kp := &KillPicker{
		window:   gtk.NewWindow(),
		listBox:  gtk.NewListBox(),
		dispatch: dispatch,
	}

	kp.window.SetTitle("Kill Application")
	kp.window.SetTransientFor(parent)
	kp.window.SetModal(true)
	kp.window.SetDefaultSize(360, 420)

	mainBox := gtk.NewBox(gtk.OrientationVertical, 12)
	mainBox.SetMarginTop(16)
	mainBox.SetMarginBottom(16)
	mainBox.SetMarginStart(16)
	mainBox.SetMarginEnd(16)

	hint := gtk.NewLabel("Select the application to end")
	hint.SetXAlign(0)
	hint.AddCSSClass("dim-label")
	mainBox.Append(hint)

	kp.listBox.SetSelectionMode(gtk.SelectionSingle)
	kp.listBox.AddCSSClass("boxed-list")
	kp.listBox.ConnectRowActivated(func(row *gtk.ListBoxRow) {
		var pid int
		if _, err := fmt.Sscan(row.Name(), &pid); err != nil {
			return
		}
		kp.dispatch(controller.KillRequested{PID: pid})
	})

	if len(apps) == 0 {
		empty := gtk.NewLabel("No applications running")
		empty.SetMarginTop(24)
		empty.SetMarginBottom(24)
		kp.listBox.SetPlaceholder(empty)
	}
	for _, p := range apps {
		kp.listBox.Append(pickerRow(p))
	}

	scrolled := gtk.NewScrolledWindow()
	scrolled.SetVExpand(true)
	scrolled.SetPolicy(gtk.PolicyNever, gtk.PolicyAutomatic)
	scrolled.SetChild(kp.listBox)
	mainBox.Append(scrolled)

	cancelBtn := gtk.NewButtonWithLabel("Cancel")
	cancelBtn.SetHAlign(gtk.AlignEnd)
	cancelBtn.ConnectClicked(kp.Close)
	mainBox.Append(cancelBtn)

	keyController := gtk.NewEventControllerKey()
	keyController.ConnectKeyPressed(func(keyval, _ uint, _ gdk.ModifierType) bool {
		if keyval == gdk.KEY_Escape {
			kp.Close()
			return true
		}
		return false
	})
	kp.window.AddController(keyController)

	kp.window.SetChild(mainBox)
	kp.window.Show()
	return kp
}

func pickerRow(p monitor.ProcessInfo) *gtk.ListBoxRow {
	row := gtk.NewListBoxRow()
	row.AddCSSClass("picker-row")
	row.SetName(fmt.Sprint(p.PID))

	box := gtk.NewBox(gtk.OrientationHorizontal, 12)

	icon := gtk.NewImage()
	icon.SetFromIconName("application-x-executable-symbolic")
	box.Append(icon)

	name := gtk.NewLabel(p.Name)
	name.SetXAlign(0)
	name.SetHExpand(true)
	name.SetEllipsize(pango.EllipsizeEnd)
	box.Append(name)

	pid := gtk.NewLabel(fmt.Sprint(p.PID))
	pid.AddCSSClass("dim-label")
	box.Append(pid)

	row.SetChild(box)
	return row
}

// Close closes the picker window.
func (kp *KillPicker) Close() {
	if kp.window != nil {
		kp.window.Close()
		kp.window = nil
	}
}
