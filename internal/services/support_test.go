package services

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tambola-games/tambola-backend/internal/models"
	"github.com/tambola-games/tambola-backend/internal/repositories"
)

// In-memory repository fakes. Each fake copies documents on the way in and
// out so the tests observe the same isolation the real driver gives.

type fakeGameRepo struct {
	mu    sync.Mutex
	games map[primitive.ObjectID]*models.Game

	// stopAfterDeals, when positive, raises the stop flag once that many
	// numbers have been dealt.
	stopAfterDeals int
	dealCount      int
}

func newFakeGameRepo() *fakeGameRepo {
	return &fakeGameRepo{games: make(map[primitive.ObjectID]*models.Game)}
}

func copyGame(g *models.Game) *models.Game {
	c := *g
	c.DealtNumbers = append([]int{}, g.DealtNumbers...)
	c.PlayerLimit = append([]int{}, g.PlayerLimit...)
	return &c
}

func (r *fakeGameRepo) put(g *models.Game) *models.Game {
	r.mu.Lock()
	defer r.mu.Unlock()
	if g.ID.IsZero() {
		g.ID = primitive.NewObjectID()
	}
	r.games[g.ID] = copyGame(g)
	return g
}

func (r *fakeGameRepo) Create(_ context.Context, game *models.Game) error {
	r.put(game)
	return nil
}

func (r *fakeGameRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.games[id]
	if !ok || g.IsDeleted {
		return nil, repositories.ErrNotFound
	}
	return copyGame(g), nil
}

func (r *fakeGameRepo) Update(_ context.Context, game *models.Game) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.games[game.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.games[game.ID] = copyGame(game)
	return nil
}

func (r *fakeGameRepo) FindAll(_ context.Context, _, _ int) ([]*models.Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Game
	for _, g := range r.games {
		if !g.IsDeleted {
			out = append(out, copyGame(g))
		}
	}
	return out, nil
}

func (r *fakeGameRepo) FindActiveInWindow(_ context.Context, start, end time.Time) (*models.Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, g := range r.games {
		if g.IsActive && !g.IsDeleted && !g.StartDate.Before(start) && g.StartDate.Before(end) {
			return copyGame(g), nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeGameRepo) FindRunning(_ context.Context) ([]*models.Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Game
	for _, g := range r.games {
		if g.IsStarted && !g.IsEnded && !g.IsDeleted {
			out = append(out, copyGame(g))
		}
	}
	return out, nil
}

func (r *fakeGameRepo) FindResumable(_ context.Context) ([]*models.Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Game
	for _, g := range r.games {
		if g.Resumable && !g.IsDeleted {
			out = append(out, copyGame(g))
		}
	}
	return out, nil
}

func (r *fakeGameRepo) FindStaleBefore(_ context.Context, cutoff time.Time) ([]*models.Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Game
	for _, g := range r.games {
		if g.IsStarted && !g.IsEnded && !g.IsDeleted && g.StartDate.Before(cutoff) {
			out = append(out, copyGame(g))
		}
	}
	return out, nil
}

func (r *fakeGameRepo) SetDealt(_ context.Context, id primitive.ObjectID, number, lastDealIndex int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.games[id]
	if !ok {
		return repositories.ErrNotFound
	}
	g.DealtNumbers = append(g.DealtNumbers, number)
	g.LastDealIndex = lastDealIndex
	r.dealCount++
	if r.stopAfterDeals > 0 && r.dealCount >= r.stopAfterDeals {
		g.IsStopped = true
	}
	return nil
}

func (r *fakeGameRepo) SetStopped(_ context.Context, id primitive.ObjectID, stopped bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.games[id]
	if !ok {
		return repositories.ErrNotFound
	}
	g.IsStopped = stopped
	return nil
}

func (r *fakeGameRepo) SetEnded(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.games[id]
	if !ok {
		return repositories.ErrNotFound
	}
	g.IsEnded = true
	g.IsStarted = false
	g.IsActive = false
	return nil
}

func (r *fakeGameRepo) IncrementCollection(_ context.Context, id primitive.ObjectID, amount float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.games[id]
	if !ok {
		return repositories.ErrNotFound
	}
	g.Collection += amount
	return nil
}

func (r *fakeGameRepo) HaltFlags(_ context.Context, id primitive.ObjectID) (bool, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.games[id]
	if !ok {
		return false, false, repositories.ErrNotFound
	}
	return g.IsStopped, g.IsEnded, nil
}

func (r *fakeGameRepo) MarkRunningResumable(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, g := range r.games {
		if g.IsStarted && !g.IsEnded && !g.IsDeleted {
			g.Resumable = true
			count++
		}
	}
	return count, nil
}

func (r *fakeGameRepo) SoftDelete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.games[id]
	if !ok {
		return repositories.ErrNotFound
	}
	g.IsDeleted = true
	return nil
}

type fakeSheetRepo struct {
	mu     sync.Mutex
	sheets map[primitive.ObjectID]*models.Sheet

	// uidTaken forces FindByUID hits for that many lookups, simulating
	// fingerprint collisions.
	uidTaken int
}

func newFakeSheetRepo() *fakeSheetRepo {
	return &fakeSheetRepo{sheets: make(map[primitive.ObjectID]*models.Sheet)}
}

func (r *fakeSheetRepo) Create(_ context.Context, sheet *models.Sheet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if sheet.ID.IsZero() {
		sheet.ID = primitive.NewObjectID()
	}
	c := *sheet
	r.sheets[sheet.ID] = &c
	return nil
}

func (r *fakeSheetRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Sheet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sheets[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	c := *s
	return &c, nil
}

func (r *fakeSheetRepo) FindByUID(_ context.Context, uid string) (*models.Sheet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.uidTaken > 0 {
		r.uidTaken--
		return &models.Sheet{UID: uid}, nil
	}
	for _, s := range r.sheets {
		if s.UID == uid {
			c := *s
			return &c, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeSheetRepo) FindByUser(_ context.Context, userID primitive.ObjectID) ([]*models.Sheet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Sheet
	for _, s := range r.sheets {
		if s.UserID == userID {
			c := *s
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *fakeSheetRepo) FindByUserAndGame(_ context.Context, userID, gameID primitive.ObjectID) ([]*models.Sheet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Sheet
	for _, s := range r.sheets {
		if s.UserID == userID && s.GameID == gameID {
			c := *s
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *fakeSheetRepo) FindByGame(_ context.Context, gameID primitive.ObjectID) ([]*models.Sheet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Sheet
	for _, s := range r.sheets {
		if s.GameID == gameID {
			c := *s
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *fakeSheetRepo) CountByGame(_ context.Context, gameID primitive.ObjectID) (int64, error) {
	sheets, _ := r.FindByGame(context.Background(), gameID)
	return int64(len(sheets)), nil
}

func (r *fakeSheetRepo) CountByUserAndGame(_ context.Context, userID, gameID primitive.ObjectID) (int64, error) {
	sheets, _ := r.FindByUserAndGame(context.Background(), userID, gameID)
	return int64(len(sheets)), nil
}

func (r *fakeSheetRepo) Update(_ context.Context, sheet *models.Sheet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sheets[sheet.ID]; !ok {
		return repositories.ErrNotFound
	}
	c := *sheet
	r.sheets[sheet.ID] = &c
	return nil
}

type fakeTicketRepo struct {
	mu      sync.Mutex
	tickets map[primitive.ObjectID]*models.Ticket
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{tickets: make(map[primitive.ObjectID]*models.Ticket)}
}

func (r *fakeTicketRepo) CreateMany(_ context.Context, tickets []*models.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range tickets {
		if t.ID.IsZero() {
			t.ID = primitive.NewObjectID()
		}
		c := *t
		r.tickets[t.ID] = &c
	}
	return nil
}

func (r *fakeTicketRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tickets[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	c := *t
	return &c, nil
}

func (r *fakeTicketRepo) FindBySheet(_ context.Context, sheetID primitive.ObjectID) ([]*models.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Ticket
	for _, t := range r.tickets {
		if t.SheetID == sheetID {
			c := *t
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *fakeTicketRepo) FindBySheets(ctx context.Context, sheetIDs []primitive.ObjectID) ([]*models.Ticket, error) {
	var out []*models.Ticket
	for _, id := range sheetIDs {
		tickets, _ := r.FindBySheet(ctx, id)
		out = append(out, tickets...)
	}
	return out, nil
}

type fakeOfflineRepo struct {
	mu     sync.Mutex
	sheets []*models.OfflineSheet
}

func newFakeOfflineRepo() *fakeOfflineRepo { return &fakeOfflineRepo{} }

func (r *fakeOfflineRepo) CreateMany(_ context.Context, sheets []*models.OfflineSheet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range sheets {
		if s.ID.IsZero() {
			s.ID = primitive.NewObjectID()
		}
		c := *s
		r.sheets = append(r.sheets, &c)
	}
	return nil
}

func (r *fakeOfflineRepo) FindByGame(_ context.Context, gameID primitive.ObjectID) ([]*models.OfflineSheet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.OfflineSheet
	for _, s := range r.sheets {
		if s.GameID == gameID {
			c := *s
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *fakeOfflineRepo) CountByGame(ctx context.Context, gameID primitive.ObjectID) (int64, error) {
	sheets, _ := r.FindByGame(ctx, gameID)
	return int64(len(sheets)), nil
}

type fakeClaimRepo struct {
	mu     sync.Mutex
	claims []*models.Claim
}

func newFakeClaimRepo() *fakeClaimRepo { return &fakeClaimRepo{} }

func (r *fakeClaimRepo) Upsert(_ context.Context, claim *models.Claim) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	for _, c := range r.claims {
		if c.GameID == claim.GameID && c.Type == claim.Type && c.TicketID == claim.TicketID {
			c.Timestamp = now
			claim.Timestamp = now
			return nil
		}
	}
	if claim.ID.IsZero() {
		claim.ID = primitive.NewObjectID()
	}
	claim.ClaimedOn = now
	claim.Timestamp = now
	c := *claim
	c.Numbers = append([]int{}, claim.Numbers...)
	r.claims = append(r.claims, &c)
	return nil
}

func (r *fakeClaimRepo) FindValidByGameAndType(_ context.Context, gameID primitive.ObjectID, claimType models.ClaimType) (*models.Claim, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.claims {
		if c.GameID == gameID && c.Type == claimType && c.IsValid {
			cp := *c
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeClaimRepo) FindValidByGame(_ context.Context, gameID primitive.ObjectID) ([]*models.Claim, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Claim
	for _, c := range r.claims {
		if c.GameID == gameID && c.IsValid {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeClaimRepo) FindByGameAndTicket(_ context.Context, gameID, ticketID primitive.ObjectID) ([]*models.Claim, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Claim
	for _, c := range r.claims {
		if c.GameID == gameID && c.TicketID == ticketID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeClaimRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.claims)
}

type fakePrizeRepo struct {
	mu     sync.Mutex
	prizes []*models.ClaimPrize
}

func newFakePrizeRepo() *fakePrizeRepo { return &fakePrizeRepo{} }

func (r *fakePrizeRepo) CreateMany(_ context.Context, prizes []*models.ClaimPrize) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range prizes {
		if p.ID.IsZero() {
			p.ID = primitive.NewObjectID()
		}
		c := *p
		r.prizes = append(r.prizes, &c)
	}
	return nil
}

func (r *fakePrizeRepo) FindByGameAndType(_ context.Context, gameID primitive.ObjectID, claimType models.ClaimType) (*models.ClaimPrize, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.prizes {
		if p.GameID == gameID && p.Type == claimType && !p.IsDeleted {
			c := *p
			return &c, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakePrizeRepo) FindByGame(_ context.Context, gameID primitive.ObjectID) ([]*models.ClaimPrize, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.ClaimPrize
	for _, p := range r.prizes {
		if p.GameID == gameID && !p.IsDeleted {
			c := *p
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *fakePrizeRepo) SoftDeleteByGame(_ context.Context, gameID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.prizes {
		if p.GameID == gameID {
			p.IsDeleted = true
		}
	}
	return nil
}

type fakeWalletRepo struct {
	mu      sync.Mutex
	wallets map[primitive.ObjectID]*models.Wallet

	// conflicts forces that many UpdateBalances calls to lose the version
	// race before writes start landing.
	conflicts int
}

func newFakeWalletRepo() *fakeWalletRepo {
	return &fakeWalletRepo{wallets: make(map[primitive.ObjectID]*models.Wallet)}
}

func (r *fakeWalletRepo) Create(_ context.Context, wallet *models.Wallet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if wallet.ID.IsZero() {
		wallet.ID = primitive.NewObjectID()
	}
	c := *wallet
	r.wallets[wallet.ID] = &c
	return nil
}

func (r *fakeWalletRepo) FindByOwner(_ context.Context, ownerType models.OwnerType, ownerID primitive.ObjectID) (*models.Wallet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, w := range r.wallets {
		if w.OwnerType == ownerType && w.OwnerID == ownerID {
			c := *w
			return &c, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeWalletRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Wallet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.wallets[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	c := *w
	return &c, nil
}

func (r *fakeWalletRepo) UpdateBalances(_ context.Context, id primitive.ObjectID, version int64, amount, referralAmount float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.wallets[id]
	if !ok {
		return repositories.ErrNotFound
	}
	if r.conflicts > 0 {
		r.conflicts--
		w.Version++ // the racing writer moved the document
		return repositories.ErrConflict
	}
	if w.Version != version {
		return repositories.ErrConflict
	}
	w.Amount = amount
	w.ReferralAmount = referralAmount
	w.Version++
	return nil
}

type fakeWalletTxRepo struct {
	mu  sync.Mutex
	txs []*models.WalletTransaction
}

func newFakeWalletTxRepo() *fakeWalletTxRepo { return &fakeWalletTxRepo{} }

func (r *fakeWalletTxRepo) Create(_ context.Context, tx *models.WalletTransaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if tx.ID.IsZero() {
		tx.ID = primitive.NewObjectID()
	}
	c := *tx
	r.txs = append(r.txs, &c)
	return nil
}

func (r *fakeWalletTxRepo) FindByWallet(_ context.Context, walletID primitive.ObjectID, _, _ int) ([]*models.WalletTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.WalletTransaction
	for _, tx := range r.txs {
		if tx.WalletID == walletID {
			c := *tx
			out = append(out, &c)
		}
	}
	return out, nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]*models.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	c := *user
	r.users[user.ID] = &c
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	c := *u
	return &c, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeUserRepo) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*models.User, error) {
	var out []*models.User
	for _, id := range ids {
		u, err := r.FindByID(ctx, id)
		if err == nil {
			out = append(out, u)
		}
	}
	return out, nil
}

type fakeAdminRepo struct {
	mu     sync.Mutex
	admins []*models.Admin
}

func newFakeAdminRepo() *fakeAdminRepo { return &fakeAdminRepo{} }

func (r *fakeAdminRepo) Create(_ context.Context, admin *models.Admin) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if admin.ID.IsZero() {
		admin.ID = primitive.NewObjectID()
	}
	c := *admin
	r.admins = append(r.admins, &c)
	return nil
}

func (r *fakeAdminRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.admins {
		if a.ID == id {
			c := *a
			return &c, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeAdminRepo) FindFirst(_ context.Context) (*models.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.admins) == 0 {
		return nil, repositories.ErrNotFound
	}
	c := *r.admins[0]
	return &c, nil
}

type fakeJoinRepo struct {
	mu    sync.Mutex
	joins []*models.JoinGame
}

func newFakeJoinRepo() *fakeJoinRepo { return &fakeJoinRepo{} }

func (r *fakeJoinRepo) Create(_ context.Context, join *models.JoinGame) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if join.ID.IsZero() {
		join.ID = primitive.NewObjectID()
	}
	c := *join
	r.joins = append(r.joins, &c)
	return nil
}

func (r *fakeJoinRepo) FindByGameAndUser(_ context.Context, gameID, userID primitive.ObjectID) (*models.JoinGame, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, j := range r.joins {
		if j.GameID == gameID && j.UserID == userID {
			c := *j
			return &c, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeJoinRepo) FindByGame(_ context.Context, gameID primitive.ObjectID) ([]*models.JoinGame, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.JoinGame
	for _, j := range r.joins {
		if j.GameID == gameID {
			c := *j
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *fakeJoinRepo) Update(_ context.Context, join *models.JoinGame) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, j := range r.joins {
		if j.ID == join.ID {
			c := *join
			r.joins[i] = &c
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (r *fakeJoinRepo) AddWinAmount(_ context.Context, gameID, userID primitive.ObjectID, amount float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, j := range r.joins {
		if j.GameID == gameID && j.UserID == userID {
			j.WinAmount += amount
			return nil
		}
	}
	return repositories.ErrNotFound
}

// fakeTxRunner runs the callback inline; the fakes have no transactional
// rollback, so tests assert on the error path ordering instead.
type fakeTxRunner struct{}

func (fakeTxRunner) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// recordingPublisher captures dealing-loop events and signals terminal ones.
type recordingPublisher struct {
	mu      sync.Mutex
	dealt   []int
	stopped chan struct{}
	ended   chan struct{}
}

func newRecordingPublisher() *recordingPublisher {
	return &recordingPublisher{
		stopped: make(chan struct{}, 1),
		ended:   make(chan struct{}, 1),
	}
}

func (p *recordingPublisher) NumberDealt(_ primitive.ObjectID, number, _ int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.dealt = append(p.dealt, number)
}

func (p *recordingPublisher) Counter(primitive.ObjectID, int) {}

func (p *recordingPublisher) GameStopped(primitive.ObjectID) {
	select {
	case p.stopped <- struct{}{}:
	default:
	}
}

func (p *recordingPublisher) GameEnded(primitive.ObjectID) {
	select {
	case p.ended <- struct{}{}:
	default:
	}
}

func (p *recordingPublisher) dealtNumbers() []int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]int{}, p.dealt...)
}
