package postdelete

import (
	"context"
	"io"

	"github.com/goliatone/go-post-delete/pkg/hooks"
	"github.com/goliatone/go-post-delete/pkg/interfaces/logger"
)

// Register wires the get_link, link and url hook forms into the registry.
// New calls it; later calls have no further effect.
//
//	get_link: ApplyFilters(ctx, name, "", LinkArgs) -> string
//	link:     DoAction(ctx, name, io.Writer, LinkArgs)
//	url:      ApplyFilters(ctx, name, "", int64, Destination) -> string
func (s *Service) Register() {
	s.registerOnce.Do(func() {
		s.hooks.AddFilter(s.HookName(HookGetLink), func(ctx context.Context, value any, args ...any) any {
			out, _ := s.GetLink(ctx, linkArgsFrom(args))
			return out
		})

		s.hooks.AddAction(s.HookName(HookLink), func(ctx context.Context, args ...any) {
			if len(args) == 0 {
				return
			}
			w, ok := args[0].(io.Writer)
			if !ok {
				return
			}
			s.writeLink(ctx, w, linkArgsFrom(args[1:]))
		})

		s.hooks.AddFilter(s.HookName(HookURL), func(ctx context.Context, value any, args ...any) any {
			var postID int64
			var dest Destination
			for _, arg := range args {
				switch v := arg.(type) {
				case int64:
					postID = v
				case int:
					postID = int64(v)
				case Destination:
					dest = v
				case string:
					dest = ToURL(v)
				}
			}
			link, err := s.URL(ctx, postID, dest)
			if err != nil {
				s.logger.Debug("url hook failed", logger.F("error", err))
				return ""
			}
			return link
		})
	})
}

// FilteredLink runs the get_link chain, the path shared by the link action
// and shortcodes.
func (s *Service) FilteredLink(ctx context.Context, args LinkArgs) string {
	return hooks.Apply(ctx, s.hooks, s.HookName(HookGetLink), "", args)
}

// Link writes the filtered link to w.
func (s *Service) Link(ctx context.Context, w io.Writer, args LinkArgs) {
	s.hooks.DoAction(ctx, s.HookName(HookLink), w, args)
}

func (s *Service) writeLink(ctx context.Context, w io.Writer, args LinkArgs) {
	out := s.FilteredLink(ctx, args)
	if out == "" {
		return
	}
	if _, err := io.WriteString(w, out); err != nil {
		s.logger.Warn("write link failed", logger.F("error", err))
	}
}

func linkArgsFrom(args []any) LinkArgs {
	for _, arg := range args {
		switch v := arg.(type) {
		case LinkArgs:
			return v
		case *LinkArgs:
			if v != nil {
				return *v
			}
		case map[string]string:
			out, _ := linkArgsFromAttrs(v)
			return out
		}
	}
	return LinkArgs{}
}
