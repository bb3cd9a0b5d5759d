package arbiter

import "fmt"

// Policy selects when a round-robin arbiter starts a new round of
// arbitration.
type Policy int

const (
	// PolicyWithdraw re-arbitrates only when the currently granted request
	// has been withdrawn. A granted requester keeps its grant on every tick
	// until it deasserts its request bit.
	PolicyWithdraw Policy = iota

	// PolicyCE re-arbitrates on every tick where the external enable input
	// is asserted, whether or not the current grantee still requests. With
	// enable deasserted the output is frozen at the last committed grant.
	PolicyCE
)

// ParsePolicy converts a policy name from a bench file into a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "withdraw":
		return PolicyWithdraw, nil
	case "ce":
		return PolicyCE, nil
	default:
		return 0, fmt.Errorf("arbiter: unknown policy %q, must be \"withdraw\" or \"ce\"", s)
	}
}

// String returns the bench-file name of the policy.
func (p Policy) String() string {
	switch p {
	case PolicyWithdraw:
		return "withdraw"
	case PolicyCE:
		return "ce"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

func (p Policy) valid() bool {
	return p == PolicyWithdraw || p == PolicyCE
}
