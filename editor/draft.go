package editor

import (
	"errors"
	"fmt"

	"github.com/milk9111/leveleditor/project"
)

var ErrDraftClosed = errors.New("editor: draft already confirmed or cancelled")

// Draft is a staged project being created or edited. The live project is
// untouched until Confirm.
type Draft struct {
	Project *project.Project

	session *Session
	fresh   bool
	closed  bool
}

// NewDraft stages an empty project seeded with the session defaults.
func (s *Session) NewDraft() *Draft {
	p := project.New()
	p.SimplifyIndex = s.Defaults.SimplifyIndex
	p.CloseHitboxLoop = s.Defaults.CloseHitboxLoop
	return &Draft{Project: p, session: s, fresh: true}
}

// BeginEdit stages a copy of the live project.
func (s *Session) BeginEdit() *Draft {
	return &Draft{Project: s.project.Clone(), session: s}
}

// Confirm replaces the live project with the draft. A draft without a
// background image, or one asking for hitboxes without a hitbox image, is
// rejected and stays open.
func (d *Draft) Confirm() error {
	if d.closed {
		return ErrDraftClosed
	}
	if d.Project.BackgroundTexturePath == "" {
		return fmt.Errorf("%w: background image", ErrMissingInput)
	}
	if d.Project.HitboxMap && d.Project.HitboxTexturePath == "" {
		return fmt.Errorf("%w: hitbox image", ErrMissingInput)
	}
	d.closed = true
	d.session.Replace(d.Project)
	if d.fresh {
		d.session.path = ""
	}
	return nil
}

func (d *Draft) Cancel() {
	d.closed = true
	d.Project = nil
}
