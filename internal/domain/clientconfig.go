package domain

// LazyLoadOptions are the intersection-observer defaults served to browser
// clients for deferring offscreen image loads.
type LazyLoadOptions struct {
	RootMargin string  `json:"root_margin"`
	Threshold  float64 `json:"threshold"`
}

// VirtualScrollConfig tunes virtualized list rendering on the client: the
// estimated row height, how many rows to render beyond the viewport, and at
// which item count the client should request the next page.
type VirtualScrollConfig struct {
	ItemHeightPx      int `json:"item_height_px"`
	OverscanItems     int `json:"overscan_items"`
	LoadMoreThreshold int `json:"load_more_threshold"`
}

// ClientConfig is the read-only tuning envelope for browser clients.
type ClientConfig struct {
	LazyLoad      LazyLoadOptions     `json:"lazy_load"`
	VirtualScroll VirtualScrollConfig `json:"virtual_scroll"`
}
