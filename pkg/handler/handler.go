//go:generate mockgen -source=handler.go -destination=handler_mock_test.go -package=handler

package handler

import (
	"context"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-contrib/cache"
	"github.com/gin-contrib/cache/persistence"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/hopebridge/hopebridge/pkg/contact"
	"github.com/hopebridge/hopebridge/pkg/donation"
	"github.com/hopebridge/hopebridge/pkg/fs"
	"github.com/hopebridge/hopebridge/pkg/media"
	"github.com/hopebridge/hopebridge/pkg/model"
	"github.com/hopebridge/hopebridge/pkg/session"
	"github.com/hopebridge/hopebridge/pkg/stats"
	"github.com/hopebridge/hopebridge/pkg/upload"
)

type donationService interface {
	Create(ctx context.Context, req *donation.Request) (*donation.Result, error)
	Get(ctx context.Context, donationID string) (*model.Donation, error)
	List(ctx context.Context, filter donation.Filter) ([]*model.Donation, error)
	UpdateStatus(ctx context.Context, donationID string, status model.Status) (*model.Donation, error)
}

type mediaService interface {
	Assign(ctx context.Context, name string, urls ...string) (*media.Slot, error)
	Remove(ctx context.Context, name string, url string) (*media.Slot, error)
	Reset(ctx context.Context, name string) error
	Slots(ctx context.Context) ([]*media.Slot, error)
	Tree(ctx context.Context) (map[string]interface{}, error)
}

type uploadService interface {
	Save(ctx context.Context, original string, reader io.Reader) (*upload.File, error)
	Delete(ctx context.Context, name string) error
}

type contactService interface {
	Send(ctx context.Context, msg *contact.Message) error
}

type statsService interface {
	Totals() (*stats.Report, error)
}

type Opts struct {
	CookieSecret  string
	AdminUser     string
	AdminPassword string
	// WebDir is an optional directory with the built site, served for unknown routes
	WebDir string
	// Files serves uploads from local storage, nil when uploads live elsewhere
	Files http.FileSystem
	// MaxUploadSize caps the whole multipart request body
	MaxUploadSize int64
	// StatsTTL is how long the stats response is cached
	StatsTTL time.Duration
}

const (
	defaultMaxUploadSize = 4 * model.DefaultMaxVideoSize
	defaultStatsTTL      = time.Minute
	multipartMemory      = 32 << 20
)

type handler struct {
	donations     donationService
	media         mediaService
	uploads       uploadService
	contact       contactService
	stats         statsService
	webDir        string
	maxUploadSize int64
}

func New(donations donationService, media mediaService, uploads uploadService, contact contactService, stats statsService, opts Opts) http.Handler {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	r.MaxMultipartMemory = multipartMemory

	secret := opts.CookieSecret
	if secret == "" {
		log.Warn("no cookie secret configured, sessions won't survive restarts")
		secret = session.RandomSecret()
	}

	store := cookie.NewStore([]byte(secret))
	store.Options(sessions.Options{Path: "/", HttpOnly: true, SameSite: http.SameSiteLaxMode})
	r.Use(sessions.Sessions(session.Name, store))

	h := handler{
		donations:     donations,
		media:         media,
		uploads:       uploads,
		contact:       contact,
		stats:         stats,
		webDir:        opts.WebDir,
		maxUploadSize: opts.MaxUploadSize,
	}

	if h.maxUploadSize <= 0 {
		h.maxUploadSize = defaultMaxUploadSize
	}

	statsTTL := opts.StatsTTL
	if statsTTL <= 0 {
		statsTTL = defaultStatsTTL
	}

	admin := func(c *gin.Context) { c.Next() }
	if opts.AdminUser != "" {
		admin = gin.BasicAuth(gin.Accounts{opts.AdminUser: opts.AdminPassword})
	} else {
		log.Warn("admin_user is not set, admin routes are not protected")
	}

	// Handlers

	r.GET("/api/ping", h.ping)

	r.POST("/api/donations", h.createDonation)
	r.GET("/api/donations", h.getDonation)
	r.GET("/api/stats", cache.CachePage(persistence.NewInMemoryStore(statsTTL), statsTTL, h.getStats))

	r.GET("/api/media", h.mediaTree)
	r.GET("/api/media/slots", h.mediaSlots)

	r.POST("/api/contact", h.sendContact)

	r.POST("/api/upload", admin, h.upload)

	adminGroup := r.Group("/api/admin", admin)
	adminGroup.GET("/donations", h.listDonations)
	adminGroup.PUT("/donations/:id/status", h.updateStatus)
	adminGroup.PUT("/media/:key", h.assignMedia)
	adminGroup.DELETE("/media/:key", h.resetMedia)

	if opts.Files != nil {
		r.StaticFS(fs.LocalPrefix, opts.Files)
	}

	r.NoRoute(h.static)

	return r
}

func (h handler) ping(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

func (h handler) createDonation(c *gin.Context) {
	req := &donation.Request{}
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(badRequest(err))
		return
	}

	res, err := h.donations.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(errorResponse(err))
		return
	}

	if err := session.SetLastDonation(c, res.ID); err != nil {
		log.WithError(err).Warn("failed to save donation id to session")
	}

	c.JSON(http.StatusCreated, res)
}

// donationView is the part of a donation shown back to the donor.
type donationView struct {
	ID            string             `json:"id"`
	FirstName     string             `json:"first_name"`
	Amount        int64              `json:"amount"`
	DisplayAmount string             `json:"display_amount"`
	Currency      model.Currency     `json:"currency"`
	Type          model.DonationType `json:"type"`
	Status        model.Status       `json:"status"`
	Dedication    *model.Dedication  `json:"dedication,omitempty"`
	GiftAid       bool               `json:"gift_aid"`
	CreatedAt     time.Time          `json:"created_at"`
}

func (h handler) getDonation(c *gin.Context) {
	donationID := c.Query("id")
	fromSession := donationID == ""
	if fromSession {
		donationID = session.LastDonation(c)
	}

	if donationID == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "no donation found"})
		return
	}

	d, err := h.donations.Get(c.Request.Context(), donationID)
	if err != nil {
		// Forget donations that no longer exist
		if fromSession && errors.Cause(err) == model.ErrNotFound {
			if err := session.Clear(c); err != nil {
				log.WithError(err).Warn("failed to clear session")
			}
		}

		c.JSON(errorResponse(err))
		return
	}

	c.JSON(http.StatusOK, donationView{
		ID:            d.ID,
		FirstName:     d.FirstName,
		Amount:        d.Amount,
		DisplayAmount: d.DisplayAmount(),
		Currency:      d.Currency,
		Type:          d.Type,
		Status:        d.Status,
		Dedication:    d.Dedication,
		GiftAid:       d.GiftAid,
		CreatedAt:     d.CreatedAt,
	})
}

func (h handler) listDonations(c *gin.Context) {
	filter := donation.Filter{Status: model.Status(c.Query("status"))}

	if limit := c.Query("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		filter.Limit = n
	}

	list, err := h.donations.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(errorResponse(err))
		return
	}

	if list == nil {
		list = []*model.Donation{}
	}

	c.JSON(http.StatusOK, gin.H{"donations": list})
}

func (h handler) updateStatus(c *gin.Context) {
	var req struct {
		Status model.Status `json:"status"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(badRequest(err))
		return
	}

	d, err := h.donations.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		c.JSON(errorResponse(err))
		return
	}

	c.JSON(http.StatusOK, d)
}

func (h handler) getStats(c *gin.Context) {
	report, err := h.stats.Totals()
	if err != nil {
		c.JSON(errorResponse(err))
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h handler) mediaTree(c *gin.Context) {
	tree, err := h.media.Tree(c.Request.Context())
	if err != nil {
		c.JSON(errorResponse(err))
		return
	}

	c.JSON(http.StatusOK, tree)
}

func (h handler) mediaSlots(c *gin.Context) {
	slots, err := h.media.Slots(c.Request.Context())
	if err != nil {
		c.JSON(errorResponse(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

func (h handler) assignMedia(c *gin.Context) {
	var req struct {
		URL  string   `json:"url"`
		URLs []string `json:"urls"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(badRequest(err))
		return
	}

	urls := req.URLs
	if req.URL != "" {
		urls = append([]string{req.URL}, urls...)
	}

	slot, err := h.media.Assign(c.Request.Context(), c.Param("key"), urls...)
	if err != nil {
		c.JSON(errorResponse(err))
		return
	}

	c.JSON(http.StatusOK, slot)
}

func (h handler) resetMedia(c *gin.Context) {
	key := c.Param("key")

	if url := c.Query("url"); url != "" {
		slot, err := h.media.Remove(c.Request.Context(), key, url)
		if err != nil {
			c.JSON(errorResponse(err))
			return
		}

		c.JSON(http.StatusOK, slot)
		return
	}

	if err := h.media.Reset(c.Request.Context(), key); err != nil {
		c.JSON(errorResponse(err))
		return
	}

	c.Status(http.StatusNoContent)
}

func (h handler) upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadSize)

	form, err := c.MultipartForm()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(errorResponse(upload.ErrTooLarge))
			return
		}

		c.JSON(badRequest(err))
		return
	}

	defer func() {
		if err := form.RemoveAll(); err != nil {
			log.WithError(err).Warn("failed to remove multipart temp files")
		}
	}()

	files := form.File["file"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no files to upload"})
		return
	}

	// Check the slot before storing anything
	var slot string
	if values := form.Value["slot"]; len(values) > 0 {
		slot = strings.TrimSpace(values[0])
	}

	var key media.Key
	if slot != "" {
		key, err = media.ParseKey(slot)
		if err != nil {
			c.JSON(errorResponse(err))
			return
		}

		if !key.Multiple && len(files) > 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "slot " + slot + " holds a single file"})
			return
		}
	}

	var (
		ctx    = c.Request.Context()
		stored = make([]*upload.File, 0, len(files))
		urls   = make([]string, 0, len(files))
	)

	// Files stored before a failure are removed, a request either lands whole or not at all
	fail := func(code int, obj interface{}) {
		h.discard(ctx, stored)
		c.JSON(code, obj)
	}

	for _, header := range files {
		file, err := header.Open()
		if err != nil {
			fail(internalError(errors.Wrapf(err, "failed to open %s", header.Filename)))
			return
		}

		saved, err := h.uploads.Save(ctx, header.Filename, file)
		file.Close()

		if err != nil {
			fail(errorResponse(err))
			return
		}

		stored = append(stored, saved)
		urls = append(urls, saved.URL)

		if slot != "" && saved.Kind != key.Kind {
			fail(errorResponse(errors.Wrapf(upload.ErrUnsupportedType, "slot %s expects %s, %s is %s", slot, key.Kind, header.Filename, saved.ContentType)))
			return
		}
	}

	response := gin.H{"files": stored}

	if slot != "" {
		assigned, err := h.media.Assign(ctx, slot, urls...)
		if err != nil {
			fail(errorResponse(err))
			return
		}
		response["slot"] = assigned
	}

	c.JSON(http.StatusOK, response)
}

func (h handler) discard(ctx context.Context, files []*upload.File) {
	for _, file := range files {
		if err := h.uploads.Delete(ctx, file.Name); err != nil {
			log.WithError(err).Warnf("failed to remove %s", file.Name)
		}
	}
}

func (h handler) sendContact(c *gin.Context) {
	msg := &contact.Message{}
	if err := c.ShouldBindJSON(msg); err != nil {
		c.JSON(badRequest(err))
		return
	}

	if err := h.contact.Send(c.Request.Context(), msg); err != nil {
		c.JSON(errorResponse(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "sent"})
}

func (h handler) static(c *gin.Context) {
	if h.webDir == "" || strings.HasPrefix(c.Request.URL.Path, "/api/") ||
		(c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	name := filepath.Join(h.webDir, filepath.FromSlash(path.Clean("/"+c.Request.URL.Path)))
	if stat, err := os.Stat(name); err == nil && !stat.IsDir() {
		c.File(name)
		return
	}

	// Client side routes fall back to the app shell
	c.File(filepath.Join(h.webDir, "index.html"))
}

func badRequest(err error) (int, interface{}) {
	return http.StatusBadRequest, gin.H{"error": err.Error()}
}

func internalError(err error) (int, interface{}) {
	log.WithError(err).Error("server error")
	return http.StatusInternalServerError, gin.H{"error": "internal server error"}
}

func errorResponse(err error) (int, interface{}) {
	if verr, ok := errors.Cause(err).(*model.ValidationError); ok {
		return http.StatusBadRequest, gin.H{"error": "invalid request", "fields": verr.Fields()}
	}

	if upstream, ok := errors.Cause(err).(*contact.UpstreamError); ok {
		log.WithError(upstream).Error("contact form relay failed")
		return http.StatusBadGateway, gin.H{"error": "message could not be delivered"}
	}

	switch errors.Cause(err) {
	case model.ErrNotFound:
		return http.StatusNotFound, gin.H{"error": "not found"}
	case model.ErrInvalidTransition, model.ErrSlotConflict, model.ErrAlreadyExists:
		return http.StatusConflict, gin.H{"error": err.Error()}
	case media.ErrInvalidSlot:
		return http.StatusBadRequest, gin.H{"error": err.Error()}
	case upload.ErrTooLarge:
		return http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()}
	case upload.ErrUnsupportedType:
		return http.StatusUnsupportedMediaType, gin.H{"error": err.Error()}
	case contact.ErrNotConfigured:
		return http.StatusServiceUnavailable, gin.H{"error": err.Error()}
	default:
		return internalError(err)
	}
}
