package signal

import "strings"

// Similar reports whether two signal texts describe the same element:
// normalized (trimmed, case-folded) texts are equal, or one contains the
// other.
func Similar(a, b string) bool {
	na := normalize(a)
	nb := normalize(b)
	if na == nb {
		return true
	}
	if na == "" || nb == "" {
		return false
	}
	return strings.Contains(na, nb) || strings.Contains(nb, na)
}

func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// Dedupe merges near-duplicate signals, walking the input in discovery
// order. Each incoming signal absorbs every accepted signal it is similar
// to; the survivor of each merge (per the supplied comparison) takes the
// position of the first signal it absorbed. The output contains no two
// similar members, which also makes the operation idempotent.
//
// O(n²), acceptable: the classifiers pre-filter to tens of signals.
func Dedupe[S any](in []S, text func(S) string, better func(keep, incoming S) S) []S {
	out := make([]S, 0, len(in))
	for _, s := range in {
		out = absorb(out, s, text, better)
	}
	return out
}

// absorb folds cand into the accepted set. A merge can change the
// surviving text ("beta" bridges "alpha beta" and "beta gamma"), so the
// scan repeats until no accepted signal is similar to the survivor.
func absorb[S any](out []S, cand S, text func(S) string, better func(keep, incoming S) S) []S {
	pos := len(out)
	for {
		merged := false
		kept := out[:0]
		for _, k := range out {
			if Similar(text(k), text(cand)) {
				cand = better(k, cand)
				merged = true
				if len(kept) < pos {
					pos = len(kept)
				}
				continue
			}
			kept = append(kept, k)
		}
		out = kept
		if !merged {
			break
		}
	}
	var zero S
	out = append(out, zero)
	copy(out[pos+1:], out[pos:])
	out[pos] = cand
	return out
}

// DedupeCTAs merges similar CTAs keeping the one with the shorter text,
// on the assumption that the shorter variant is the cleaner label
// ("Get Started" wins over "Get Started Today").
func DedupeCTAs(in []CTA) []CTA {
	return Dedupe(in,
		func(c CTA) string { return c.Text },
		func(keep, incoming CTA) CTA {
			if len(strings.TrimSpace(incoming.Text)) < len(strings.TrimSpace(keep.Text)) {
				return incoming
			}
			return keep
		})
}

// DedupeProof merges similar social proof signals keeping the one with
// the higher credibility score.
func DedupeProof(in []SocialProof) []SocialProof {
	return Dedupe(in,
		func(p SocialProof) string { return p.Text },
		func(keep, incoming SocialProof) SocialProof {
			if incoming.Credibility > keep.Credibility {
				return incoming
			}
			return keep
		})
}
