// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package transfer

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/textpaste/pkg/drawing"
	"github.com/walteh/textpaste/pkg/log"
	"github.com/walteh/textpaste/pkg/messages"
	"github.com/walteh/textpaste/pkg/prompt"
)

// DefaultSettingsKey is the document dictionary key holding the delete preference
const DefaultSettingsKey = "textpaste"

// DeleteKeyword toggles the delete preference at the source prompt
const DeleteKeyword = "Delete"

// Settings is a string store scoped to one drawing
type Settings interface {
	GetString(ctx context.Context, key string) (string, bool, error)
	SetString(ctx context.Context, key, value string) error
}

// Phase is where a session is in its lifecycle
type Phase int

const (
	PhaseSelectingSource       Phase = iota // waiting for the source pick
	PhaseSelectingDestinations              // pasting into picked destinations
	PhaseDone                               // finished, the transaction is committed
	PhaseCancelled                          // aborted at the source prompt
)

func (p Phase) String() string {
	switch p {
	case PhaseSelectingSource:
		return "selecting_source"
	case PhaseSelectingDestinations:
		return "selecting_destinations"
	case PhaseDone:
		return "done"
	case PhaseCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Result summarizes a finished session
type Result struct {
	Phase        Phase
	Source       drawing.Handle
	Value        string
	SourceErased bool
	Destinations []drawing.Handle
	Skipped      []drawing.Handle
	// PreferenceChanged is set when the delete preference was stored during
	// the session, even when the session was then cancelled
	PreferenceChanged bool
}

// Options configures a Session
type Options struct {
	Document *drawing.Document
	Prompter prompt.Prompter
	// Settings stores the delete preference, the document when nil
	Settings Settings
	// Messages defaults to English
	Messages    *messages.Catalog
	SettingsKey string
}

// 📋 Session is one source pick followed by any number of destination picks
type Session struct {
	id       string
	doc      *drawing.Document
	prompter prompt.Prompter
	settings Settings
	msgs     *messages.Catalog
	key      string
	accessor *Accessor

	ran               bool
	deleteSource      bool
	preferenceChanged bool
	value             *string
}

// 🏭 New creates a session
func New(opts Options) (*Session, error) {
	if opts.Document == nil {
		return nil, errors.New("document is required")
	}
	if opts.Prompter == nil {
		return nil, errors.New("prompter is required")
	}
	if opts.Settings == nil {
		opts.Settings = opts.Document
	}
	if opts.SettingsKey == "" {
		opts.SettingsKey = DefaultSettingsKey
	}
	if opts.Messages == nil {
		msgs, err := messages.New("en")
		if err != nil {
			return nil, errors.Errorf("loading messages: %w", err)
		}
		opts.Messages = msgs
	}

	return &Session{
		id:       uuid.NewString(),
		doc:      opts.Document,
		prompter: opts.Prompter,
		settings: opts.Settings,
		msgs:     opts.Messages,
		key:      opts.SettingsKey,
		accessor: NewAccessor(NewCellLocator(opts.Prompter, opts.Messages)),
	}, nil
}

// ID identifies the session in logs
func (s *Session) ID() string {
	return s.id
}

// 🚀 Run drives the session to its end. A cancel at the source prompt returns
// the result together with an error wrapping ErrUserCancelled.
func (s *Session) Run(ctx context.Context) (*Result, error) {
	if s.ran {
		return nil, errors.WithStack(ErrSessionUsed)
	}
	s.ran = true

	logger := zerolog.Ctx(ctx).With().Str("session", s.id).Logger()
	ctx = logger.WithContext(ctx)

	if err := s.loadDeletePolicy(ctx); err != nil {
		return nil, err
	}

	res := &Result{Phase: PhaseSelectingSource}

	source, picked, err := s.selectSource(ctx)
	res.PreferenceChanged = s.preferenceChanged
	if err != nil {
		if errors.Is(err, ErrUserCancelled) {
			res.Phase = PhaseCancelled
			logger.Debug().Msg("session cancelled at source prompt")
			return res, err
		}
		return nil, err
	}
	if !picked {
		res.Phase = PhaseDone
		logger.Debug().Msg("no source picked")
		return res, nil
	}
	res.Source = source

	tx, err := s.doc.StartTransaction(ctx)
	if err != nil {
		return nil, errors.Errorf("starting transaction: %w", err)
	}
	defer tx.Abort(ctx)

	if err := s.extract(ctx, tx, res); err != nil {
		return nil, err
	}

	if res.Value == "" {
		s.prompter.Message(ctx, s.msgs.Get(messages.NothingToPaste))
		if err := tx.Commit(ctx); err != nil {
			return nil, errors.Errorf("committing: %w", err)
		}
		res.Phase = PhaseDone
		return res, nil
	}

	res.Phase = PhaseSelectingDestinations
	if err := s.pasteLoop(ctx, tx, res); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, errors.Errorf("committing: %w", err)
	}
	res.Phase = PhaseDone

	logger.Info().
		Str("source", string(res.Source)).
		Int("destinations", len(res.Destinations)).
		Int("skipped", len(res.Skipped)).
		Bool("source_erased", res.SourceErased).
		Msg("paste session finished")
	return res, nil
}

func (s *Session) loadDeletePolicy(ctx context.Context) error {
	v, ok, err := s.settings.GetString(ctx, s.key)
	if err != nil {
		return errors.Errorf("reading delete preference: %w", err)
	}
	if ok {
		s.deleteSource = parseBool(v, false)
	}
	return nil
}

func (s *Session) storeDeletePolicy(ctx context.Context) error {
	if err := s.settings.SetString(ctx, s.key, formatBool(s.deleteSource)); err != nil {
		return errors.Errorf("storing delete preference: %w", err)
	}
	return nil
}

// selectSource returns the picked source. picked is false when the user
// declined to pick anything.
func (s *Session) selectSource(ctx context.Context) (drawing.Handle, bool, error) {
	opts := prompt.EntityOptions{
		Message:       s.msgs.Get(messages.SelectSource),
		Keywords:      []string{DeleteKeyword},
		AllowNone:     true,
		RejectMessage: s.msgs.Get(messages.Rejected),
		AllowedKinds:  SourceKinds(),
	}

	for {
		res, err := s.prompter.GetEntity(ctx, opts)
		if err != nil {
			return "", false, errors.Errorf("prompting for source: %w", err)
		}

		switch res.Status {
		case prompt.StatusKeyword:
			answer, err := s.prompter.Confirm(ctx, s.msgs.Get(messages.DeleteQuestion))
			if err != nil {
				return "", false, errors.Errorf("asking delete preference: %w", err)
			}
			if answer.Status != prompt.StatusOK {
				// a cancelled question leaves the stored preference alone
				return "", false, errors.WithStack(ErrUserCancelled)
			}
			s.deleteSource = answer.Yes
			if err := s.storeDeletePolicy(ctx); err != nil {
				return "", false, err
			}
			s.preferenceChanged = true
		case prompt.StatusNone:
			return "", false, nil
		case prompt.StatusCancel:
			return "", false, errors.WithStack(ErrUserCancelled)
		case prompt.StatusOK:
			if e, ok := s.doc.Entity(res.Handle); ok && CapabilitiesOf(e.Kind()).Has(Readable) {
				return res.Handle, true, nil
			}
			s.prompter.Message(ctx, opts.RejectMessage)
		default:
			s.prompter.Message(ctx, opts.RejectMessage)
		}
	}
}

func (s *Session) extract(ctx context.Context, tx *drawing.Transaction, res *Result) error {
	mode := drawing.ForRead
	if s.deleteSource {
		mode = drawing.ForWrite
	}
	e, err := tx.GetObject(res.Source, mode)
	if err != nil {
		return errors.Errorf("opening source: %w", err)
	}

	caps := CapabilitiesOf(e.Kind())
	if s.deleteSource && !caps.Has(Clearable) {
		if err := tx.Erase(res.Source); err != nil {
			return errors.Errorf("erasing source: %w", err)
		}
		res.SourceErased = true
	}

	value, err := s.accessor.Extract(ctx, e, s.deleteSource && caps.Has(Clearable))
	if err != nil {
		return errors.Errorf("reading source: %w", err)
	}
	s.value = &value
	res.Value = value

	action := log.ActionRead
	if res.SourceErased {
		action = log.ActionErased
	}
	log.FromContext(ctx).LogEntityOperation(ctx, log.EntityOperation{
		Handle: string(e.Handle()),
		Kind:   e.Kind().String(),
		Action: action,
		Text:   value,
	})
	return nil
}

func (s *Session) pasteLoop(ctx context.Context, tx *drawing.Transaction, res *Result) error {
	opts := prompt.EntityOptions{
		Message:       s.msgs.Get(messages.SelectDestination),
		RejectMessage: s.msgs.Get(messages.Rejected),
		AllowedKinds:  DestinationKinds(),
	}

	for {
		pick, err := s.prompter.GetEntity(ctx, opts)
		if err != nil {
			return errors.Errorf("prompting for destination: %w", err)
		}

		if pick.Status == prompt.StatusCancel {
			return nil
		}
		if pick.Status == prompt.StatusRejected {
			s.prompter.Message(ctx, opts.RejectMessage)
		}
		if pick.Status != prompt.StatusOK {
			continue
		}

		e, err := s.openDestination(tx, pick.Handle)
		if err != nil {
			return err
		}
		if e == nil {
			s.prompter.Message(ctx, opts.RejectMessage)
			continue
		}

		outcome, err := s.accessor.Write(ctx, e, *s.value)
		if err != nil {
			return errors.Errorf("writing destination %s: %w", pick.Handle, err)
		}

		op := log.EntityOperation{Handle: string(e.Handle()), Kind: e.Kind().String(), Text: *s.value}
		if outcome == Written {
			tx.QueueForGraphicsFlush(pick.Handle)
			res.Destinations = append(res.Destinations, pick.Handle)
			op.Action = log.ActionWritten
		} else {
			res.Skipped = append(res.Skipped, pick.Handle)
			op.Action = log.ActionSkipped
			op.Detail = outcome.String()
		}
		log.FromContext(ctx).LogEntityOperation(ctx, op)
	}
}

// openDestination opens h for write. It returns nil without error when h is
// not an acceptable destination.
func (s *Session) openDestination(tx *drawing.Transaction, h drawing.Handle) (drawing.Entity, error) {
	e, err := tx.GetObject(h, drawing.ForRead)
	if errors.Is(err, drawing.ErrNotFound) || errors.Is(err, drawing.ErrErased) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Errorf("opening destination: %w", err)
	}
	if !CapabilitiesOf(e.Kind()).Has(Writable) {
		return nil, nil
	}
	if e, err = tx.GetObject(h, drawing.ForWrite); err != nil {
		return nil, errors.Errorf("opening destination: %w", err)
	}
	return e, nil
}

func parseBool(s string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true":
		return true
	case "false":
		return false
	default:
		return def
	}
}

func formatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
