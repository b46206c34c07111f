package response_models

type OverviewCounts struct {
	Artists         int64 `json:"artists"`
	Clients         int64 `json:"clients"`
	UnassignedCount int64 `json:"unassignedClients"`
	Wannado         int64 `json:"wannado"`
	HealingEntries  int64 `json:"healingEntries"`
	OpenHealing     int64 `json:"openHealing"`
}

// StudioOverview is the manager dashboard rollup for one studio. It is not
// paginated.
type StudioOverview struct {
	Studio  StudioSummary          `json:"studio"`
	Counts  OverviewCounts         `json:"counts"`
	Artists []ArtistSummary        `json:"artists"`
	Clients []ClientSummary        `json:"clients"`
	Wannado []ImageResponse        `json:"wannado"`
	Healing []HealingEntryResponse `json:"healing"`
}
