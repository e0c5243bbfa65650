package candidates

import "fmt"

// Kind says why a candidate URL was generated. It drives display grouping
// and batching only, never correctness.
type Kind int

const (
	KindFullURL Kind = iota
	KindSegment
	KindBaseURL
	KindSubdomain
	KindSubdomainPermutation
	KindDomainName
	KindDomain
	KindLeftoverPattern
	KindPathSubdomain
	KindPathDomainName
	KindPathDomain
	KindPathCurrentPath
	KindPathCurrentSubdomain
	KindPathCurrentDomainName
	KindPathCurrentDomain
	KindPathCurrentHostname
	KindIPPathSegment
	KindIPPathCurrentPath
	KindIPPathCommon
	KindIPPathSelf
	KindIPPathPort
	KindIPRootCommon
	KindDirectURL
	KindBruteForce
	KindBruteForceRecursive
)

var kindNames = map[Kind]string{
	KindFullURL:               "Full URL",
	KindSegment:               "Segment",
	KindBaseURL:               "Base URL",
	KindSubdomain:             "Subdomain",
	KindSubdomainPermutation:  "Subdomain Permutation",
	KindDomainName:            "Domain Name",
	KindDomain:                "Domain",
	KindLeftoverPattern:       "Leftover Pattern",
	KindPathSubdomain:         "Path-Subdomain",
	KindPathDomainName:        "Path-Domain-Name",
	KindPathDomain:            "Path-Domain",
	KindPathCurrentPath:       "Path-Current-Path",
	KindPathCurrentSubdomain:  "Path-Current-Subdomain",
	KindPathCurrentDomainName: "Path-Current-Domain-Name",
	KindPathCurrentDomain:     "Path-Current-Domain",
	KindPathCurrentHostname:   "Path-Current-Hostname",
	KindIPPathSegment:         "IP-Path-Segment",
	KindIPPathCurrentPath:     "IP-Path-Current-Path",
	KindIPPathCommon:          "IP-Path-Common",
	KindIPPathSelf:            "IP-Path-Self",
	KindIPPathPort:            "IP-Path-Port",
	KindIPRootCommon:          "IP-Root-Common",
	KindDirectURL:             "Direct URL",
	KindBruteForce:            "Brute Force",
	KindBruteForceRecursive:   "Brute Force Recursive",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Candidate is one URL to probe plus the structured reason it exists.
// Param carries the kind-specific detail (segment number, path level,
// brute-force word) that older string tags used to smuggle inside labels.
type Candidate struct {
	URL   string
	Kind  Kind
	Param string
}

// Label renders the candidate reason for display.
func (c Candidate) Label() string {
	if c.Param == "" {
		return c.Kind.String()
	}
	return c.Kind.String() + ": " + c.Param
}
