package socialproof

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"

	"github.com/gkobilansky/landing-page-report/dict"
	"github.com/gkobilansky/landing-page-report/signal"
)

// jsonldMatcher is compiled once; scanning runs per page.
var jsonldMatcher = cascadia.MustCompile(`script[type="application/ld+json"]`)

// ldNode is the loosely-shaped JSON-LD node we care about. Values that
// can be object-or-string are decoded into RawMessage and unwrapped.
type ldNode struct {
	Type            json.RawMessage   `json:"@type"`
	Graph           []json.RawMessage `json:"@graph"`
	Name            string            `json:"name"`
	ReviewBody      string            `json:"reviewBody"`
	Description     string            `json:"description"`
	Author          json.RawMessage   `json:"author"`
	Publisher       json.RawMessage   `json:"publisher"`
	ReviewRating    *ldRating         `json:"reviewRating"`
	AggregateRating *ldRating         `json:"aggregateRating"`
	Review          []json.RawMessage `json:"review"`

	// Set when the node itself is an AggregateRating.
	RatingValue json.Number `json:"ratingValue"`
	ReviewCount json.Number `json:"reviewCount"`
}

type ldRating struct {
	RatingValue json.Number `json:"ratingValue"`
	RatingCount json.Number `json:"ratingCount"`
	ReviewCount json.Number `json:"reviewCount"`
}

// FromJSONLD parses the page's machine-readable annotations
// (script[type="application/ld+json"]) into social proof signals with
// the same schema the DOM classifier produces. Malformed blocks are
// skipped. Annotation-derived signals carry Source "jsonld" and are
// merged with DOM signals by the deduplicator.
func FromJSONLD(html string, d *dict.Dictionaries) []signal.SocialProof {
	if html == "" {
		return nil
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	var out []signal.SocialProof
	doc.FindMatcher(jsonldMatcher).Each(func(_ int, sel *goquery.Selection) {
		raw := strings.TrimSpace(sel.Text())
		if raw == "" {
			return
		}
		for _, node := range decodeNodes([]byte(raw)) {
			out = append(out, signalsFromNode(node, d)...)
		}
	})
	return out
}

// decodeNodes accepts a single object, an array of objects, or an
// object with an @graph array.
func decodeNodes(raw []byte) []ldNode {
	var nodes []ldNode

	var one ldNode
	if err := json.Unmarshal(raw, &one); err == nil {
		if len(one.Graph) > 0 {
			for _, g := range one.Graph {
				var n ldNode
				if json.Unmarshal(g, &n) == nil {
					nodes = append(nodes, n)
				}
			}
			return nodes
		}
		if one.typeName() != "" {
			return []ldNode{one}
		}
	}

	var many []ldNode
	if err := json.Unmarshal(raw, &many); err == nil {
		return many
	}
	return nodes
}

// typeName unwraps "@type", which may be a string or an array of strings.
func (n *ldNode) typeName() string {
	if len(n.Type) == 0 {
		return ""
	}
	var s string
	if json.Unmarshal(n.Type, &s) == nil {
		return s
	}
	var arr []string
	if json.Unmarshal(n.Type, &arr) == nil && len(arr) > 0 {
		return arr[0]
	}
	return ""
}

// entityName unwraps author/publisher, which may be a string or an
// object with a name.
func entityName(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	var obj struct {
		Name string `json:"name"`
	}
	if json.Unmarshal(raw, &obj) == nil {
		return obj.Name
	}
	return ""
}

func signalsFromNode(n ldNode, d *dict.Dictionaries) []signal.SocialProof {
	var out []signal.SocialProof

	switch n.typeName() {
	case "Review":
		out = append(out, reviewSignal(n, d))

	case "AggregateRating":
		out = append(out, ratingSignal(n.Name, &ldRating{
			RatingValue: n.RatingValue,
			ReviewCount: n.ReviewCount,
		}))

	case "Product", "Organization", "LocalBusiness", "SoftwareApplication", "Service":
		if n.AggregateRating != nil {
			out = append(out, ratingSignal(n.Name, n.AggregateRating))
		}
		for _, r := range n.Review {
			var rv ldNode
			if json.Unmarshal(r, &rv) == nil {
				out = append(out, reviewSignal(rv, d))
			}
		}
	}

	return out
}

func reviewSignal(n ldNode, d *dict.Dictionaries) signal.SocialProof {
	text := n.ReviewBody
	if text == "" {
		text = n.Description
	}
	if text == "" {
		text = n.Name
	}
	author := entityName(n.Author)
	if author != "" {
		text += " — " + author
	}

	s := signal.SocialProof{
		Text:       cleanText(text),
		Type:       signal.ProofReview,
		AboveFold:  false, // annotations carry no geometry
		Visibility: signal.LevelMedium,
		Context:    signal.ContextContent,
		HasName:    author != "",
		HasRating:  n.ReviewRating != nil,
		Suspicious: d.Match(dict.PatternSuspicious, text),
		Source:     "jsonld",
	}
	s.Credibility = Credibility(&s)
	return s
}

func ratingSignal(name string, r *ldRating) signal.SocialProof {
	text := "Rated " + r.RatingValue.String() + " out of 5"
	if name != "" {
		text = name + ": " + text
	}
	count := r.ReviewCount
	if count == "" {
		count = r.RatingCount
	}
	if count != "" {
		text += " (" + count.String() + " reviews)"
	}
	s := signal.SocialProof{
		Text:       text,
		Type:       signal.ProofRating,
		Visibility: signal.LevelMedium,
		Context:    signal.ContextContent,
		HasRating:  true,
		Source:     "jsonld",
	}
	s.Credibility = Credibility(&s)
	return s
}
