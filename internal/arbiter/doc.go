// Package arbiter decides, once per tick, which single requester out of a
// fixed-width request vector is granted a shared resource.
//
// Every arbiter produces a grant vector with at most one bit set, and a set
// grant bit always corresponds to a set request bit. Stateless arbiters
// (PriorityArbiter, ProgrammablePriorityArbiter) are pure functions of their
// per-tick inputs. Stateful arbiters (RoundRobinSelector,
// FairAmongEqualsArbiter, RoundRobinEncoder) own a single register, the last
// committed grant, and follow a two-phase tick discipline: Eval computes the
// tick's output and the candidate next register value from the register as it
// stood at the start of the tick, and Commit makes the update visible to the
// following tick. Step combines the two for callers that drive an arbiter
// directly rather than through the tick engine.
package arbiter
