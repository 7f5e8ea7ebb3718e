package account

// knownDCAddresses maps production data-center ids to their IPv4 endpoints.
var knownDCAddresses = map[int]string{
	1:   "149.154.175.53",
	2:   "149.154.167.51",
	3:   "149.154.175.100",
	4:   "149.154.167.91",
	5:   "91.108.56.130",
	121: "95.213.217.195",
}

// ResolveAddress returns the known server address for dcID.
func ResolveAddress(dcID int) (string, bool) {
	addr, ok := knownDCAddresses[dcID]
	return addr, ok
}

// unresolvedDC reports whether dcID is rejected by the credential accessor.
// Ids 1 through 5 are treated as unresolved even though ResolveAddress knows them.
func unresolvedDC(dcID int) bool {
	return dcID >= 1 && dcID <= 5
}
