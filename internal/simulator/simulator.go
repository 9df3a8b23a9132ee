package simulator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rasoihub/tiffinbox/internal/engine"
	"github.com/rasoihub/tiffinbox/internal/factories"
	"github.com/rasoihub/tiffinbox/internal/models"
	"github.com/rasoihub/tiffinbox/internal/repositories"
	"github.com/rasoihub/tiffinbox/internal/repositories/postgres"
	"github.com/schollz/progressbar/v3"
)

// Simulator drives fake booking sessions through the order
// configuration engine, either over a generated in-memory catalog or a
// postgres-backed one, and emits the resulting submissions.
type Simulator struct {
	Config      *models.Config
	Customers   []*models.Customer
	MenuOptions []*models.MenuOption
	Addresses   map[string][]*models.Address
	Today       models.CalendarDate
	Rng         *rand.Rand

	classifier *engine.Classifier
	gate       *engine.Gate
	stock      stockService

	menuRepo    repositories.MenuOptionRepository
	addressRepo repositories.AddressRepository
}

// stockService is the engine's StockChecker plus the decrement the
// simulator applies after each submission.
type stockService interface {
	engine.StockChecker
	Decrement(ctx context.Context, productID string, by int) error
}

// memoryStock is the in-memory stock collaborator used when no
// database is configured.
type memoryStock struct {
	quantities map[string]int
}

func (m *memoryStock) Quantity(ctx context.Context, productID string) (int, error) {
	return m.quantities[productID], nil
}

func (m *memoryStock) Decrement(ctx context.Context, productID string, by int) error {
	if m.quantities[productID] < by {
		return fmt.Errorf("insufficient stock for product %s", productID)
	}
	m.quantities[productID] -= by
	return nil
}

func NewSimulator(config *models.Config) *Simulator {
	seed := int64(config.Seed)
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	today := models.NewCalendarDate(config.StartDate)
	if config.StartDate.IsZero() {
		today = models.NewCalendarDate(time.Now())
	}
	return &Simulator{
		Config:     config,
		Addresses:  make(map[string][]*models.Address),
		Today:      today,
		Rng:        rand.New(rand.NewSource(seed)),
		classifier: engine.NewClassifier(config),
	}
}

func (s *Simulator) Run() error {
	ctx := context.Background()

	output := s.determineOutputDestination()
	defer func() {
		if err := output.Close(); err != nil {
			log.Printf("Error closing output: %v", err)
		}
	}()

	if err := s.initializeData(ctx); err != nil {
		return fmt.Errorf("failed to initialize data: %w", err)
	}
	s.gate = engine.NewGate(s.classifier, s.stock, s.Config.LowStockLevelOrDefault())

	log.Printf("Simulating %d booking sessions over %d menus and %d customers",
		s.Config.SessionCount, len(s.MenuOptions), len(s.Customers))

	bar := progressbar.Default(int64(s.Config.SessionCount), "booking sessions")

	var submitted, rejected int
	var revenue float64
	for i := 0; i < s.Config.SessionCount; i++ {
		sub, err := s.runSession(ctx, output)
		if err != nil {
			rejected++
		} else {
			submitted++
			revenue += sub.TotalPrice
		}
		_ = bar.Add(1)
	}

	log.Printf("Done: %d submitted, %d rejected, total order value %.2f", submitted, rejected, revenue)
	return nil
}

func (s *Simulator) initializeData(ctx context.Context) error {
	customerFactory := &factories.CustomerFactory{}
	addressFactory := &factories.AddressFactory{}
	menuFactory := &factories.MenuOptionFactory{}

	s.Customers = make([]*models.Customer, s.Config.InitialCustomers)
	for i := range s.Customers {
		customer := customerFactory.CreateCustomer()
		s.Customers[i] = customer

		addressCount := s.Rng.Intn(3) + 1
		for j := 0; j < addressCount; j++ {
			s.Addresses[customer.ID] = append(s.Addresses[customer.ID], addressFactory.CreateAddress(customer.ID))
		}
		customer.PrimaryAddressID = s.Addresses[customer.ID][0].ID
	}

	quantities := make(map[string]int)
	for i := 0; i < s.Config.InitialMenus; i++ {
		menu := menuFactory.CreateMenuOption(s.Config)
		s.MenuOptions = append(s.MenuOptions, menu)
		// a few menus start scarce or sold out to exercise the stock gate
		switch s.Rng.Intn(10) {
		case 0:
			quantities[menu.MenuItemRef] = 0
		case 1:
			quantities[menu.MenuItemRef] = s.Rng.Intn(4) + 1
		default:
			quantities[menu.MenuItemRef] = s.Rng.Intn(200) + 50
		}
	}

	if s.Config.DatabaseURL == "" {
		s.stock = &memoryStock{quantities: quantities}
		return nil
	}
	return s.initializePostgres(ctx, quantities)
}

// initializePostgres round-trips the generated catalog through the
// database so sessions run against what the collaborators actually
// serve.
func (s *Simulator) initializePostgres(ctx context.Context, quantities map[string]int) error {
	pool, err := pgxpool.New(ctx, s.Config.DatabaseURL)
	if err != nil {
		return fmt.Errorf("unable to connect to database: %w", err)
	}

	menuRepo := postgres.NewMenuOptionRepository(pool)
	addressRepo := postgres.NewAddressRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	s.menuRepo = menuRepo
	s.addressRepo = addressRepo
	s.stock = stockRepo

	if s.Config.SeedDatabase {
		if err := stockRepo.DeleteAll(ctx); err != nil {
			return err
		}
		if err := addressRepo.DeleteAll(ctx); err != nil {
			return err
		}
		if err := menuRepo.DeleteAll(ctx); err != nil {
			return err
		}
		if err := menuRepo.BulkCreate(ctx, s.MenuOptions); err != nil {
			return fmt.Errorf("failed to seed menus: %w", err)
		}
		var allAddresses []*models.Address
		for _, addresses := range s.Addresses {
			allAddresses = append(allAddresses, addresses...)
		}
		if err := addressRepo.BulkCreate(ctx, allAddresses); err != nil {
			return fmt.Errorf("failed to seed addresses: %w", err)
		}
		if err := stockRepo.BulkSet(ctx, quantities); err != nil {
			return fmt.Errorf("failed to seed stock: %w", err)
		}
		log.Printf("Seeded %d menus, %d addresses", len(s.MenuOptions), len(allAddresses))
	}

	menus, err := s.menuRepo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch menu catalog: %w", err)
	}
	s.MenuOptions = s.MenuOptions[:0]
	for _, menu := range menus {
		s.MenuOptions = append(s.MenuOptions, menu)
	}

	for _, customer := range s.Customers {
		addresses, err := s.addressRepo.GetByCustomerID(ctx, customer.ID)
		if err != nil {
			return fmt.Errorf("failed to fetch addresses: %w", err)
		}
		if len(addresses) > 0 {
			s.Addresses[customer.ID] = addresses
		}
	}
	return nil
}

// outputSubmitter bridges the engine's submission boundary to an
// output destination.
type outputSubmitter struct {
	dest OutputDestination
}

func (o *outputSubmitter) Submit(ctx context.Context, sub *models.OrderSubmission) error {
	event := NewOrderSubmittedEvent(sub, engine.TotalItems(sub.Configuration))
	msg, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return o.dest.WriteMessage(TopicOrderSubmitted, msg)
}

func (s *Simulator) runSession(ctx context.Context, output OutputDestination) (*models.OrderSubmission, error) {
	customer := s.Customers[s.Rng.Intn(len(s.Customers))]
	menu := s.MenuOptions[s.Rng.Intn(len(s.MenuOptions))]

	orderMode := models.OrderModeSubscription
	if s.Rng.Intn(10) == 0 {
		orderMode = models.OrderModeDailyFlexible
	}

	sess := engine.NewSession(s.classifier, s.gate, customer.ID, orderMode, s.Today)
	sess.SelectMenu(menu)

	// anchors occasionally land on today or the past to exercise the
	// roll-forward policy
	sess.ClickDate(s.Today.AddDays(s.Rng.Intn(12) - 2))
	if sess.Policy().Manual() {
		for extra := s.Rng.Intn(4); extra > 0; extra-- {
			sess.ClickDate(s.Today.AddDays(s.Rng.Intn(14) + 1))
		}
	}

	s.assignAddresses(sess, customer)
	s.applySkips(sess)

	if orderMode == models.OrderModeDailyFlexible {
		for _, date := range sess.SelectedDates() {
			// one in twelve dates is left unassigned on purpose
			if s.Rng.Intn(12) == 0 {
				continue
			}
			dayMenu := s.MenuOptions[s.Rng.Intn(len(s.MenuOptions))]
			if err := sess.AssignDateMenu(date, dayMenu); err != nil {
				return nil, err
			}
		}
	}

	sub, err := sess.Submit(ctx, &outputSubmitter{dest: output})
	if err != nil {
		s.emitRejection(sess, customer, menu, err, output)
		return nil, err
	}

	if err := s.stock.Decrement(ctx, menu.MenuItemRef, 1); err != nil {
		log.Printf("Stock decrement failed for %s: %v", menu.MenuItemRef, err)
	}
	return sub, nil
}

func (s *Simulator) assignAddresses(sess *engine.Session, customer *models.Customer) {
	addresses := s.Addresses[customer.ID]
	if len(addresses) == 0 {
		return
	}

	// one in eight sessions skips the address step entirely, which the
	// validation gate should reject
	if s.Rng.Intn(8) == 0 {
		return
	}

	pick := func() models.AddressRef {
		return models.RefOf(addresses[s.Rng.Intn(len(addresses))])
	}

	sess.SetAddress(models.SlotFull, pick())

	menu := sess.Menu()
	switch sess.Classification().Mode {
	case models.FulfilmentSingleMealItem:
		if s.Rng.Intn(5) != 0 { // sometimes left unset to trip the gate
			sess.SetAddress(sess.Classification().Slot, pick())
		}
	case models.FulfilmentDailyRateItem:
		for _, slot := range menu.OfferedSlots() {
			if s.Rng.Intn(6) != 0 {
				sess.SetAddress(slot, pick())
			}
		}
	default:
		if s.Rng.Intn(3) == 0 {
			slots := menu.OfferedSlots()
			if len(slots) > 0 {
				sess.SetAddress(slots[s.Rng.Intn(len(slots))], pick())
			}
		}
	}
}

func (s *Simulator) applySkips(sess *engine.Session) {
	menu := sess.Menu()
	for _, date := range sess.SelectedDates() {
		if s.Rng.Intn(6) != 0 {
			continue
		}
		slots := menu.OfferedSlots()
		if len(slots) == 0 {
			continue
		}
		sess.SetSkip(date, slots[s.Rng.Intn(len(slots))], true)
	}
}

func (s *Simulator) emitRejection(sess *engine.Session, customer *models.Customer, menu *models.MenuOption, reason error, output OutputDestination) {
	// in-flight and double-submit errors are simulator bugs, not
	// customer-facing rejections
	if errors.Is(reason, engine.ErrSubmissionInFlight) || errors.Is(reason, engine.ErrAlreadySubmitted) {
		log.Printf("Unexpected session state: %v", reason)
		return
	}

	event := NewOrderRejectedEvent(sess.ID, customer.ID, menu.ID, reason, time.Now().UTC())
	msg, err := json.Marshal(event)
	if err != nil {
		log.Printf("Error serializing rejection event: %v", err)
		return
	}
	if err := output.WriteMessage(TopicOrderRejected, msg); err != nil {
		log.Printf("Failed to write rejection event: %v", err)
	}
}
