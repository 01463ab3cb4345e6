// Package gallery implements the AI artwork gallery feature: generating
// pieces from entries, tracking per-attempt status, regeneration, and
// deletion.
package gallery

import (
	"context"

	"tableflip.dev/memoir/pkg/ai"
	"tableflip.dev/memoir/pkg/collection"
	"tableflip.dev/memoir/pkg/entry"
	"tableflip.dev/memoir/pkg/feature"
	"tableflip.dev/memoir/pkg/gallery"
	"tableflip.dev/memoir/pkg/insights"
	"tableflip.dev/memoir/pkg/store"
)

const loadKey = "gallery.load"

func generateKey(id string) string {
	return "gallery.generate." + id
}

// State is the gallery snapshot.
type State struct {
	Items   *collection.Identified[*gallery.Artwork]
	Style   gallery.ArtStyle
	Ratio   gallery.AspectRatio
	Loading bool
	Err     string
}

// New returns an empty gallery with the default style settings.
func New() State {
	return State{
		Items: collection.NewIdentified[*gallery.Artwork](),
		Style: gallery.StyleWatercolor,
		Ratio: gallery.RatioSquare,
	}
}

// Action is the sealed action set for the gallery.
type Action interface {
	feature.Action
	isGallery()
}

// Load fetches the artworks.
type Load struct{}

// Loaded lands the fetched artworks.
type Loaded struct{ Items []*gallery.Artwork }

// LoadFailed reports a failed fetch.
type LoadFailed struct{ Message string }

// StyleChanged selects the art style for new pieces.
type StyleChanged struct{ Style gallery.ArtStyle }

// RatioChanged selects the aspect ratio for new pieces.
type RatioChanged struct{ Ratio gallery.AspectRatio }

// Generate starts a piece for the given entry.
type Generate struct{ Entry *entry.Entry }

// Regenerate restarts a finished or failed piece.
type Regenerate struct{ ID string }

// Completed lands the generated image.
type Completed struct {
	ID    string
	Image []byte
}

// Failed marks a piece failed, leaving its other fields alone.
type Failed struct {
	ID      string
	Message string
}

// SaveFailed reports a failed status persist.
type SaveFailed struct{ Message string }

// Delete removes a piece and its stored image.
type Delete struct{ ID string }

// DeleteFailed reports a failed delete.
type DeleteFailed struct{ Message string }

func (Load) isGallery()         {}
func (Loaded) isGallery()       {}
func (LoadFailed) isGallery()   {}
func (StyleChanged) isGallery() {}
func (RatioChanged) isGallery() {}
func (Generate) isGallery()     {}
func (Regenerate) isGallery()   {}
func (Completed) isGallery()    {}
func (Failed) isGallery()       {}
func (SaveFailed) isGallery()   {}
func (Delete) isGallery()       {}
func (DeleteFailed) isGallery() {}

// Deps are the gallery's collaborators.
type Deps struct {
	Store store.Persistence
	AI    ai.Generator
}

// Reduce is the gallery's transition function.
func (d Deps) Reduce(s State, a feature.Action) (State, feature.Effect) {
	switch act := a.(type) {
	case Load:
		s.Loading = true
		s.Err = ""
		return s, feature.Cancellable(loadKey, func(ctx context.Context, emit func(feature.Action)) {
			items, err := d.Store.ListArtworks(ctx)
			if err != nil {
				emit(LoadFailed{Message: err.Error()})
				return
			}
			emit(Loaded{Items: items})
		})

	case Loaded:
		s.Loading = false
		s.Items = collection.FromSlice(act.Items)
		return s, feature.None()

	case LoadFailed:
		s.Loading = false
		s.Err = act.Message
		return s, feature.None()

	case StyleChanged:
		s.Style = act.Style
		return s, feature.None()

	case RatioChanged:
		s.Ratio = act.Ratio
		return s, feature.None()

	case Generate:
		art := gallery.NewArtwork(act.Entry, s.Style, s.Ratio)
		next := s.Items.Clone()
		next.InsertHead(art)
		s.Items = next
		return s, d.generate(art)

	case Regenerate:
		art, ok := s.Items.Get(act.ID)
		if !ok || art.Status == gallery.StatusGenerating {
			return s, feature.None()
		}
		restarted := *art
		restarted.Status = gallery.StatusGenerating
		restarted.Error = ""
		restarted.Image = nil
		next := s.Items.Clone()
		next.Update(&restarted)
		s.Items = next
		return s, d.generate(&restarted)

	case Completed:
		art, ok := s.Items.Get(act.ID)
		if !ok {
			// The piece was deleted while the model ran.
			return s, feature.None()
		}
		done := *art
		done.Status = gallery.StatusCompleted
		done.Image = act.Image
		done.Error = ""
		next := s.Items.Clone()
		next.Update(&done)
		s.Items = next
		saved := done
		return s, feature.Task(func(ctx context.Context, emit func(feature.Action)) {
			if err := d.Store.SaveArtwork(ctx, &saved); err != nil {
				emit(SaveFailed{Message: err.Error()})
			}
		})

	case Failed:
		art, ok := s.Items.Get(act.ID)
		if !ok {
			return s, feature.None()
		}
		failed := *art
		failed.Status = gallery.StatusFailed
		failed.Error = act.Message
		next := s.Items.Clone()
		next.Update(&failed)
		s.Items = next
		saved := failed
		return s, feature.Task(func(ctx context.Context, emit func(feature.Action)) {
			if err := d.Store.SaveArtwork(ctx, &saved); err != nil {
				emit(SaveFailed{Message: err.Error()})
			}
		})

	case Delete:
		if _, ok := s.Items.Get(act.ID); !ok {
			return s, feature.None()
		}
		next := s.Items.Clone()
		next.Remove(act.ID)
		s.Items = next
		id := act.ID
		return s, feature.Batch(
			feature.Cancel(generateKey(id)),
			feature.Task(func(ctx context.Context, emit func(feature.Action)) {
				if err := d.Store.DeleteArtwork(ctx, id); err != nil {
					emit(DeleteFailed{Message: err.Error()})
				}
			}),
		)

	case SaveFailed:
		s.Err = act.Message
		return s, feature.Emit(Load{})

	case DeleteFailed:
		s.Err = act.Message
		return s, feature.Emit(Load{})
	}
	return s, feature.None()
}

// generate persists the placeholder, then asks the image model.
func (d Deps) generate(art *gallery.Artwork) feature.Effect {
	snapshot := *art
	return feature.Cancellable(generateKey(snapshot.ID), func(ctx context.Context, emit func(feature.Action)) {
		if err := d.Store.SaveArtwork(ctx, &snapshot); err != nil {
			emit(Failed{ID: snapshot.ID, Message: err.Error()})
			return
		}
		var moodName string
		if snapshot.Mood != nil {
			moodName = string(*snapshot.Mood)
		}
		prompt := insights.ArtworkPrompt(snapshot.EntryTitle, string(snapshot.Style), moodName)
		image, err := d.AI.GenerateImage(ctx, prompt, string(snapshot.AspectRatio))
		if err != nil {
			emit(Failed{ID: snapshot.ID, Message: err.Error()})
			return
		}
		emit(Completed{ID: snapshot.ID, Image: image})
	})
}
