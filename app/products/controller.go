package products

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mytheresa/product-form/models"
)

// ProductStore is the ordered product list the controller mutates.
type ProductStore interface {
	GetAllProducts() []models.Product
	GetByID(id int64) (*models.Product, error)
	Create(p models.Product) error
	Replace(p models.Product) error
	Delete(id int64) error
	Len() int
}

// IDSource hands out ids for new products.
type IDSource interface {
	Next() int64
}

// ConfirmFunc asks the user a yes/no question and blocks until answered.
// It is called with the controller lock held and must not call back into it.
type ConfirmFunc func(prompt string) bool

// DeleteOutcome tells what DeleteProduct did.
type DeleteOutcome int

const (
	DeleteNotFound DeleteOutcome = iota
	DeleteDeclined
	DeleteRemoved
	DeleteScheduled
	DeletePending
)

func (o DeleteOutcome) String() string {
	switch o {
	case DeleteDeclined:
		return "declined"
	case DeleteRemoved:
		return "removed"
	case DeleteScheduled:
		return "scheduled"
	case DeletePending:
		return "pending"
	default:
		return "not_found"
	}
}

type Options struct {
	// ConfirmDeletes asks before deleting and removes the row after DeleteDelay.
	ConfirmDeletes bool
	DeleteDelay    time.Duration
	Policy         ValidationPolicy
	Scheduler      Scheduler
	Metrics        *Metrics
}

// Controller owns the product list and the state of the single form.
type Controller struct {
	mu sync.Mutex

	store ProductStore
	ids   IDSource
	opts  Options

	editingID  *int64
	form       FormInput
	confirming *int64
	removing   map[int64]Timer
	alert      string
	notice     string
}

func NewController(store ProductStore, ids IDSource, opts Options) *Controller {
	if opts.Scheduler == nil {
		opts.Scheduler = clockScheduler{}
	}
	return &Controller{
		store:    store,
		ids:      ids,
		opts:     opts,
		removing: make(map[int64]Timer),
	}
}

// ConfirmDeletes reports whether deletions go through a confirmation.
func (c *Controller) ConfirmDeletes() bool {
	return c.opts.ConfirmDeletes
}

// EditingID returns the id under edit, if any.
func (c *Controller) EditingID() (int64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.editingID == nil {
		return 0, false
	}
	return *c.editingID, true
}

// Submit creates a product, or replaces the one under edit.
// A *ValidationError leaves the list and the edit marker untouched.
func (c *Controller) Submit(in FormInput) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	product, err := c.opts.Policy.Validate(in)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			c.alert = verr.Message
			c.opts.Metrics.rejected(verr.Field)
			slog.Warn("Product submission rejected", "field", verr.Field, "reason", verr.Message)
		}
		c.form = in
		return err
	}

	mode := c.modeLocked()
	if c.editingID == nil {
		product.ID = c.ids.Next()
		if err := c.store.Create(product); err != nil {
			return fmt.Errorf("create product %d: %w", product.ID, err)
		}
		slog.Info("Product created", "product_id", product.ID, "name", product.Name)
	} else {
		product.ID = *c.editingID
		switch err := c.store.Replace(product); {
		case errors.Is(err, models.ErrProductNotFound):
			slog.Debug("Edited product no longer exists", "product_id", product.ID)
		case err != nil:
			return fmt.Errorf("replace product %d: %w", product.ID, err)
		default:
			slog.Info("Product updated", "product_id", product.ID, "name", product.Name)
		}
	}

	c.opts.Metrics.submitted(mode, c.store.Len())
	c.resetFormLocked()
	return nil
}

// BeginEdit loads a product into the form. Unknown ids and rows being
// removed are ignored.
func (c *Controller) BeginEdit(id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, pending := c.removing[id]; pending {
		return
	}
	product, err := c.store.GetByID(id)
	if err != nil {
		return
	}

	c.editingID = &id
	c.form = FormInput{
		Name:        product.Name,
		Price:       product.Price.String(),
		Description: product.Description,
	}
	slog.Info("Editing product", "product_id", id)
}

// CancelEdit returns the form to create mode without touching the list.
func (c *Controller) CancelEdit() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetFormLocked()
}

// RequestDeleteConfirmation opens the confirmation dialog for id.
func (c *Controller) RequestDeleteConfirmation(id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, pending := c.removing[id]; pending {
		return
	}
	if _, err := c.store.GetByID(id); err != nil {
		return
	}
	c.confirming = &id
}

// DeleteProduct removes a product. Without confirmations it is removed at
// once; otherwise confirm must accept, the row is marked and the removal
// happens after the configured delay.
func (c *Controller) DeleteProduct(id int64, confirm ConfirmFunc) DeleteOutcome {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.confirming = nil

	if _, err := c.store.GetByID(id); err != nil {
		return DeleteNotFound
	}
	if _, pending := c.removing[id]; pending {
		return DeletePending
	}

	if !c.opts.ConfirmDeletes {
		c.removeLocked(id)
		return DeleteRemoved
	}

	if confirm == nil || !confirm(DeletePrompt) {
		slog.Info("Product deletion declined", "product_id", id)
		return DeleteDeclined
	}

	c.removing[id] = c.opts.Scheduler.AfterFunc(c.opts.DeleteDelay, func() {
		c.finishRemoval(id)
	})
	slog.Info("Product marked for removal", "product_id", id, "delay", c.opts.DeleteDelay)
	return DeleteScheduled
}

func (c *Controller) finishRemoval(id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, pending := c.removing[id]; !pending {
		return
	}
	delete(c.removing, id)

	if c.removeLocked(id) {
		c.notice = DeletedNotice
	}
}

// removeLocked deletes id and leaves edit mode if it was the edited product.
func (c *Controller) removeLocked(id int64) bool {
	if err := c.store.Delete(id); err != nil {
		slog.Debug("Product already gone", "product_id", id)
		return false
	}
	if c.editingID != nil && *c.editingID == id {
		c.resetFormLocked()
	}
	c.opts.Metrics.deleted(c.store.Len())
	slog.Info("Product deleted", "product_id", id)
	return true
}

// Shutdown cancels every pending removal.
func (c *Controller) Shutdown() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for id, t := range c.removing {
		t.Stop()
		delete(c.removing, id)
	}
}

// Render builds the table body from the current list.
func (c *Controller) Render() Table {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.renderLocked()
}

func (c *Controller) renderLocked() Table {
	return buildTable(c.store.GetAllProducts(), c.removing, c.editingID)
}

// View returns the whole page. Alert and notice are shown once.
func (c *Controller) View() Page {
	c.mu.Lock()
	defer c.mu.Unlock()

	mode := c.modeLocked()
	page := Page{
		Mode:           mode,
		Presentation:   presentationFor(mode),
		Form:           c.form,
		Table:          c.renderLocked(),
		Alert:          c.alert,
		Notice:         c.notice,
		ConfirmDeletes: c.opts.ConfirmDeletes,
		Refresh:        len(c.removing) > 0,
	}
	if c.confirming != nil {
		page.Confirm = &Confirmation{ID: *c.confirming, Prompt: DeletePrompt}
	}

	c.alert = ""
	c.notice = ""
	return page
}

func (c *Controller) modeLocked() Mode {
	if c.editingID != nil {
		return ModeEdit
	}
	return ModeCreate
}

func (c *Controller) resetFormLocked() {
	c.editingID = nil
	c.form = FormInput{}
}
