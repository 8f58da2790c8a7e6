// Package recommend scores anime for a user.
//
// The engine is a set of pure functions over explicit inputs: a watchlist, a
// candidate pool and, for the collaborative path, the rating profiles of
// other users. Nothing is cached between calls and inputs are never
// modified, so every function is safe for concurrent use.
//
// # Algorithms
//
//   - ContentBased: genre and type preference distributions built from the
//     watchlist, plus a small community-score bonus.
//   - Collaborative: user-based filtering with Pearson correlation between
//     rating profiles.
//   - Hybrid: collaborative and content lists merged 60/40 by anime id.
//
// Content scores are clipped to [0, 10]. Collaborative scores are weighted
// rating averages and are not clipped; their confidence is the summed
// similarity mass of the contributing neighbours and has no upper bound.
// Hybrid blends the two as they are, without rescaling.
//
// # Usage
//
//	profile := recommend.ProfileFromWatchlist(userID, watchlist)
//	recs := recommend.Hybrid(profile, others, watchlist, pool, 10)
//	for i := range recs {
//	    recs[i].Reason = recommend.Explain(recs[i], watchlist, anime)
//	}
package recommend
