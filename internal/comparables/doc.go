// Package comparables finds comparable hotel properties for a subject and
// estimates how much property tax the subject may be overpaying.
//
// # Pipeline
//
// Each subject goes through three pure steps:
//
//  1. Filter: keep candidates in the same state and county with fewer rooms,
//     a lower VPR, a market value inside the tolerance band and an adjacent
//     hotel class. The subject itself (by identity key) is never a candidate.
//  2. Select: take the nearest three in (market value, VPR) space, then the
//     least valuable and the most valuable of what is left, and truncate the
//     concatenation to the requested maximum.
//  3. Estimate: the median VPR of the nearest picks times the subject's room
//     count gives an assessed value; the subject's market value gives its own
//     tax base. Both are multiplied by the state tax rate and the difference
//     is the overpaid estimate.
//
// Engine.Run applies the pipeline to every subject in a Scope and returns the
// results in dataset order together with run counters.
//
// # Usage Example
//
//	engine := comparables.NewEngine(slog.Default())
//
//	opts := comparables.DefaultOptions()
//	opts.Tolerance = 0.25
//
//	run, err := engine.Run(ctx, records, opts)
//	if err != nil {
//	    // only configuration errors are returned
//	    return err
//	}
//	for _, r := range run.Results {
//	    fmt.Println(r.Subject.Address, r.Status)
//	}
//
// # Configuration Domains
//
// Tolerance must lie in [0, 5.0] and MaxResults in [1, 10]. Values outside
// these ranges produce a *ConfigurationError before any subject is processed.
// A subject without candidates is not an error: its status is "no match" and
// it carries no estimate.
package comparables
