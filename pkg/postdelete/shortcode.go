package postdelete

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"strings"
)

var errInvalidPostID = errors.New("postdelete: invalid post_id attribute")

var shortcodeAttr = regexp.MustCompile(`([A-Za-z_][\w-]*)\s*=\s*(?:"([^"]*)"|'([^']*)'|([^\s"'\]]+))`)

// shortcodePattern matches [tag], [tag attr="v" ...] and the self closing
// [tag ... /] form.
func shortcodePattern(tag string) *regexp.Regexp {
	return regexp.MustCompile(`\[` + regexp.QuoteMeta(tag) + `((?:\s+[^\]]*?)?)\s*/?\]`)
}

// ExpandShortcodes replaces every delete link shortcode in content with the
// filtered link for its attributes. Tags for posts the actor may not delete
// expand to nothing.
func (s *Service) ExpandShortcodes(ctx context.Context, content string) string {
	tag := s.ShortcodeTag()
	if !strings.Contains(content, "["+tag) {
		return content
	}
	pattern := shortcodePattern(tag)
	return pattern.ReplaceAllStringFunc(content, func(match string) string {
		groups := pattern.FindStringSubmatch(match)
		attrs := ParseShortcodeAttrs(groups[1])
		return s.Shortcode(ctx, attrs)
	})
}

// Shortcode renders the link for one shortcode's attributes. Unknown
// attributes are ignored; a post_id that is not a number renders nothing.
func (s *Service) Shortcode(ctx context.Context, attrs map[string]string) string {
	args, err := linkArgsFromAttrs(attrs)
	if err != nil {
		return ""
	}
	return s.FilteredLink(ctx, args)
}

// ParseShortcodeAttrs parses name="value" pairs. Names are lowercased; the
// last duplicate wins.
func ParseShortcodeAttrs(raw string) map[string]string {
	attrs := map[string]string{}
	for _, m := range shortcodeAttr.FindAllStringSubmatch(raw, -1) {
		value := m[2]
		if value == "" {
			value = m[3]
		}
		if value == "" {
			value = m[4]
		}
		attrs[strings.ToLower(m[1])] = value
	}
	return attrs
}

func linkArgsFromAttrs(attrs map[string]string) (LinkArgs, error) {
	args := LinkArgs{
		Text:   attrs["text"],
		Title:  attrs["title"],
		Class:  attrs["class"],
		Before: attrs["before"],
		After:  attrs["after"],
	}
	if raw := strings.TrimSpace(attrs["post_id"]); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id < 0 {
			return LinkArgs{}, errInvalidPostID
		}
		args.PostID = id
	}
	if raw := strings.TrimSpace(attrs["url"]); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil && id > 0 {
			args.Destination = ToPost(id)
		} else {
			args.Destination = ToURL(raw)
		}
	}
	return args, nil
}
