package lifecycle

import (
	"context"

	"github.com/skippy/farm/pkg/records"
	"github.com/skippy/farm/pkg/sdm"
)

// ArchiveSummary describes one archive run.
type ArchiveSummary struct {
	RunID    string
	Paddocks int
	// Written is the number of new or changed rows.
	Written int
	// Skipped is the number of estimates within tolerance of the archive.
	Skipped int
	DryRun  bool
}

// PaddockGrowth is a paddock with its daily growth estimates.
type PaddockGrowth struct {
	Paddock   records.Paddock
	Estimates []records.GrowthEstimate
}

// PaddockFeed is a paddock with its feed on offer and the SDM change per
// day since the previous composite, if known.
type PaddockFeed struct {
	Paddock    records.Paddock
	Feed       sdm.FeedOnOffer
	GrowthRate *float64
}

// Archiver saves computed estimates for the upstream push job. Growth
// rates within the sync tolerance of the archived value are not written
// again. In dry-run mode nothing is written and the summary shows what
// would be.
type Archiver interface {
	ArchiveGrowth(ctx context.Context, growth []PaddockGrowth) (ArchiveSummary, error)
	ArchiveFeed(ctx context.Context, feed []PaddockFeed) (ArchiveSummary, error)
}
