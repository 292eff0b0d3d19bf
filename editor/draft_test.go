package editor

import (
	"errors"
	"testing"

	"github.com/milk9111/leveleditor/project"
)

func TestDraftCancel(t *testing.T) {
	s, r := newTestSession(t)
	place(t, s, "tree", 0, 0)
	live := s.Project()
	clears := r.clears

	d := s.BeginEdit()
	d.Project.BackgroundTexturePath = "bg.png"
	d.Project.Level.GameObjects = nil
	d.Cancel()

	if s.Project() != live || len(live.Level.GameObjects) != 1 || live.BackgroundTexturePath != "" {
		t.Fatalf("cancelled draft leaked into the live project")
	}
	if r.clears != clears {
		t.Fatalf("cancel touched the resolver")
	}
	if err := d.Confirm(); !errors.Is(err, ErrDraftClosed) {
		t.Fatalf("Confirm after Cancel err = %v", err)
	}
}

func TestDraftConfirm(t *testing.T) {
	tests := []struct {
		name    string
		edit    func(p *project.Project)
		wantErr error
	}{
		{
			name:    "no_background",
			edit:    func(p *project.Project) {},
			wantErr: ErrMissingInput,
		},
		{
			name: "hitboxes_without_image",
			edit: func(p *project.Project) {
				p.BackgroundTexturePath = "bg.png"
				p.HitboxMap = true
			},
			wantErr: ErrMissingInput,
		},
		{
			name: "ok",
			edit: func(p *project.Project) {
				p.BackgroundTexturePath = "bg.png"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestSession(t)
			place(t, s, "tree", 0, 0)
			live := s.Project()

			d := s.BeginEdit()
			tt.edit(d.Project)
			err := d.Confirm()
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				if s.Project() != live {
					t.Fatalf("rejected draft replaced the live project")
				}
				return
			}
			if err != nil {
				t.Fatalf("Confirm: %v", err)
			}
			if s.Project() != d.Project || s.Project().BackgroundTexturePath != "bg.png" {
				t.Fatalf("live project not replaced")
			}
			if objs := s.Project().Level.GameObjects; len(objs) != 1 || objs[0].Texture() == nil {
				t.Fatalf("instances not rebound after confirm")
			}
			if s.Selected() != nil || s.CanUndo() {
				t.Fatalf("selection or history survived the swap")
			}
		})
	}
}

func TestNewDraftGeneratesHitboxes(t *testing.T) {
	r := newFakeResolver()
	v := &fakeVectorizer{}
	s := NewSession(r, v)
	s.Defaults = Defaults{SimplifyIndex: 7, CloseHitboxLoop: false}

	d := s.NewDraft()
	if d.Project.SimplifyIndex != 7 || d.Project.CloseHitboxLoop {
		t.Fatalf("draft ignored defaults: %+v", d.Project)
	}
	d.Project.BackgroundTexturePath = "bg.png"
	d.Project.HitboxTexturePath = "hitbox.png"
	d.Project.HitboxMap = true
	if err := d.Confirm(); err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if v.calls != 1 {
		t.Fatalf("vectorizer called %d times", v.calls)
	}
	hb := s.Project().Level.HitboxMap
	if len(hb) != 1 || len(hb[0].Vertices) != 3 {
		t.Fatalf("hitboxes = %+v, want one opened ring", hb)
	}
	if s.Path() != "" {
		t.Fatalf("new project kept a path: %q", s.Path())
	}
}
