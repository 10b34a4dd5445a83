package tracker

import (
	"net/http"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/theoremus-urban-solutions/transit-tracker/config"
	"github.com/theoremus-urban-solutions/transit-tracker/coord"
	"github.com/theoremus-urban-solutions/transit-tracker/feed"
	"github.com/theoremus-urban-solutions/transit-tracker/marker"
	"github.com/theoremus-urban-solutions/transit-tracker/picker"
	"github.com/theoremus-urban-solutions/transit-tracker/shapes"
	"github.com/theoremus-urban-solutions/transit-tracker/stream"
	"github.com/theoremus-urban-solutions/transit-tracker/surface"
	"github.com/theoremus-urban-solutions/transit-tracker/vehiclestate"
)

// Client is the top-level tracker: one stream subscription, one vehicle
// store, one marker cache, one shape cache, all publishing to one surface.
//
// Every mutation of client state runs under a single mutex, whether it
// originates from the stream goroutine or from a UI click, so the rest of
// the packages stay free of locking. The alive flag closes the teardown
// race: a frame that loses the race against Close is dropped, never applied
// to a dead surface.
type Client struct {
	log  logrus.FieldLogger
	surf surface.Surface

	mu              sync.Mutex
	alive           bool
	store           *vehiclestate.Store
	markers         *marker.Cache
	shapes          *shapes.Cache
	activeStaticKey string

	manager *stream.Manager
}

// NewClient assembles a client from configuration and a rendering surface.
// Nothing connects until Start.
func NewClient(cfg *config.AppConfig, surf surface.Surface, log logrus.FieldLogger) *Client {
	c := &Client{
		log:     log,
		surf:    surf,
		alive:   true,
		store:   vehiclestate.NewStore(cfg.Render.DirectionBucketDegrees),
		markers: marker.NewCache(&marker.Renderer{PixelRatio: cfg.Render.PixelRatio}, surf),
		shapes: shapes.NewCache(&shapes.HTTPFetcher{
			BaseURL: cfg.Static.BaseURL,
			Client:  &http.Client{Timeout: time.Duration(cfg.Static.TimeoutMS) * time.Millisecond},
		}, coord.ZagrebFrame),
	}
	c.manager = stream.NewManager(cfg.Stream.URL, stream.Backoff{
		Base:      time.Duration(cfg.Stream.BackoffBaseMS) * time.Millisecond,
		Increment: time.Duration(cfg.Stream.BackoffIncrementMS) * time.Millisecond,
		Cap:       time.Duration(cfg.Stream.BackoffCapMS) * time.Millisecond,
	}, c.handleFrame, log)
	return c
}

// Start begins streaming vehicle frames.
func (c *Client) Start() {
	c.manager.Start()
}

// Close stops the stream and drops any frame still in flight. Idempotent.
func (c *Client) Close() {
	c.mu.Lock()
	c.alive = false
	c.mu.Unlock()
	c.manager.Stop()
}

// ConnectionState reports the stream lifecycle state.
func (c *Client) ConnectionState() stream.State {
	return c.manager.State()
}

// handleFrame runs on the stream goroutine for every received message. A
// frame that fails to parse or decode is dropped whole; the previous vehicle
// set stays on screen.
func (c *Client) handleFrame(data []byte) {
	frame, err := feed.ParseFrame(data)
	if err != nil {
		c.log.WithError(err).Warn("dropping malformed frame")
		return
	}
	vehicles, err := feed.DecodeFrame(frame, coord.ZagrebFrame)
	if err != nil {
		c.log.WithError(err).Warn("dropping undecodable frame")
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.alive {
		return
	}

	c.store.Apply(vehicles)
	keyChanged := frame.ActiveStaticKey != c.activeStaticKey
	c.activeStaticKey = frame.ActiveStaticKey

	c.publishVehicleLayersLocked()
	if keyChanged {
		// The shape table for the old key is stale. Refresh the overlay if
		// a route is selected; already-rendered markers are unaffected.
		if _, _, ok := c.store.Selected(); ok {
			c.publishRouteShapeLocked()
		}
	}
}

// HandleClick resolves a click to the topmost vehicle marker under it and
// selects its route. A click that hits nothing clears the selection. The
// returned feature is the selected one when ok is true.
func (c *Client) HandleClick(p surface.Point) (surface.Feature, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.alive {
		return surface.Feature{}, false
	}

	candidates := c.surf.FeaturesAt(p, []string{surface.LayerHighlight, surface.LayerVehicles})
	f, ok := picker.Resolve(p, candidates, c.markers, c.surf)
	if !ok {
		c.clearSelectionLocked()
		return surface.Feature{}, false
	}

	c.store.Select(f.RouteID, f.ShapeID)
	c.publishVehicleLayersLocked()
	c.publishRouteShapeLocked()
	c.log.WithFields(logrus.Fields{"route": f.RouteID, "shape": f.ShapeID}).Debug("vehicle selected")
	return f, true
}

// ClearSelection drops the highlight and the route-shape overlay.
func (c *Client) ClearSelection() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.alive {
		return
	}
	c.clearSelectionLocked()
}

func (c *Client) clearSelectionLocked() {
	c.store.ClearSelection()
	c.publishVehicleLayersLocked()
	c.surf.SetFeatures(surface.LayerRouteShape, surface.FeatureCollection{})
}

func (c *Client) publishVehicleLayersLocked() {
	base, highlight := c.store.Collections(c.markers)
	c.surf.SetFeatures(surface.LayerVehicles, base)
	c.surf.SetFeatures(surface.LayerHighlight, highlight)
}

// publishRouteShapeLocked draws the selected route variant's polyline. A
// shape id missing from the table, or a failed table fetch, leaves the
// selection highlighted but the overlay empty.
func (c *Client) publishRouteShapeLocked() {
	_, shapeID, ok := c.store.Selected()
	if !ok {
		c.surf.SetFeatures(surface.LayerRouteShape, surface.FeatureCollection{})
		return
	}

	table, err := c.shapes.Ensure(c.activeStaticKey)
	if err != nil {
		c.log.WithError(err).WithField("key", c.activeStaticKey).Warn("shape table unavailable")
		c.surf.SetFeatures(surface.LayerRouteShape, surface.FeatureCollection{})
		return
	}
	shape, found := table[shapeID]
	if !found {
		c.log.WithField("shape", shapeID).Debug("shape id not in active table")
		c.surf.SetFeatures(surface.LayerRouteShape, surface.FeatureCollection{})
		return
	}

	c.surf.SetFeatures(surface.LayerRouteShape, surface.FeatureCollection{
		Lines: []surface.LineFeature{{ShapeID: shape.ID, Lats: shape.Lats, Lons: shape.Lons}},
	})
}
