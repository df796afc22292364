package engine

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/keldine/worldtycoon/internal/catalog"
	"github.com/keldine/worldtycoon/internal/company"
)

// Action rejections surfaced to the API layer.
var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrMissingTechnology = errors.New("required technology not researched")
	ErrInvalidTarget     = errors.New("invalid target")
	ErrAlreadyPublic     = errors.New("company is already listed")
	ErrNotOperating      = errors.New("company does not operate in that country")
	ErrLimitReached      = errors.New("limit reached")
)

// Player actions run between ticks under the world lock. They all follow
// the same shape: validate, charge, mutate, report.

// BuildStore opens a store of the given format in a country the company
// operates in.
func (w *World) BuildStore(c *company.Company, st catalog.StoreType, countryCode string) (*company.Store, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	format, ok := catalog.StoreFormats[st]
	if !ok {
		return nil, fmt.Errorf("%w: unknown store type %q", ErrInvalidTarget, st)
	}
	if !c.OperatesIn(countryCode) {
		return nil, ErrNotOperating
	}
	if format.RequiredTech != "" && !c.HasTech(format.RequiredTech) {
		return nil, ErrMissingTechnology
	}
	cost := catalog.StoreCost(st, w.Indicators.InflationRate)
	if c.Cash < cost {
		return nil, ErrInsufficientFunds
	}
	c.Cash -= cost
	store := &company.Store{
		ID:          uuid.NewString(),
		Type:        st,
		CountryCode: countryCode,
		City:        w.capitalCity(countryCode),
	}
	for _, pid := range format.CarriedProducts {
		store.Items = append(store.Items, company.StoreItem{ProductID: pid})
	}
	c.Stores = append(c.Stores, store)
	if c.IsPlayer {
		w.AddNews(CategoryPlayer, fmt.Sprintf("Opened a %s in %s for %s.", st, store.City, money(cost)))
	}
	return store, nil
}

// BuildFactory builds a plant for one recipe output.
func (w *World) BuildFactory(c *company.Company, outputID, countryCode string) (*company.Factory, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := catalog.Recipes[outputID]; !ok {
		return nil, fmt.Errorf("%w: no recipe for %q", ErrInvalidTarget, outputID)
	}
	if !c.OperatesIn(countryCode) {
		return nil, ErrNotOperating
	}
	if !c.CanManufacture(outputID) {
		return nil, ErrMissingTechnology
	}
	category := catalog.FactoryCategoryFor(outputID)
	cost := catalog.FactoryCost(category, w.Indicators.InflationRate)
	if c.Cash < cost {
		return nil, ErrInsufficientFunds
	}
	c.Cash -= cost
	f := &company.Factory{
		ID:          uuid.NewString(),
		Category:    category,
		OutputID:    outputID,
		CountryCode: countryCode,
		City:        w.capitalCity(countryCode),
	}
	c.Factories = append(c.Factories, f)
	if c.IsPlayer {
		w.AddNews(CategoryPlayer, fmt.Sprintf("Built a plant in %s for %s.", f.City, money(cost)))
	}
	return f, nil
}

// BuildFarm starts growing a crop.
func (w *World) BuildFarm(c *company.Company, cropID, countryCode string) (*company.Farm, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := catalog.Crops[cropID]; !ok {
		return nil, fmt.Errorf("%w: %q is not farmable", ErrInvalidTarget, cropID)
	}
	if !c.OperatesIn(countryCode) {
		return nil, ErrNotOperating
	}
	cost := catalog.Adjusted(catalog.BaseCostFarm, w.Indicators.InflationRate)
	if c.Cash < cost {
		return nil, ErrInsufficientFunds
	}
	c.Cash -= cost
	f := &company.Farm{
		ID:          uuid.NewString(),
		CropID:      cropID,
		CountryCode: countryCode,
		City:        w.capitalCity(countryCode),
	}
	c.Farms = append(c.Farms, f)
	return f, nil
}

// BuildMarketingFirm opens a marketing division in a country without one.
func (w *World) BuildMarketingFirm(c *company.Company, countryCode string) (*company.MarketingFirm, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !c.OperatesIn(countryCode) {
		return nil, ErrNotOperating
	}
	for _, firm := range c.MarketingFirms {
		if firm.CountryCode == countryCode {
			return nil, fmt.Errorf("%w: marketing firm already present in %s", ErrLimitReached, countryCode)
		}
	}
	cost := catalog.Adjusted(catalog.BaseCostMarketingFirm, w.Indicators.InflationRate)
	if c.Cash < cost {
		return nil, ErrInsufficientFunds
	}
	c.Cash -= cost
	firm := &company.MarketingFirm{
		ID:          uuid.NewString(),
		CountryCode: countryCode,
		City:        w.capitalCity(countryCode),
	}
	c.MarketingFirms = append(c.MarketingFirms, firm)
	return firm, nil
}

// BuildResearchCenter opens a research center, the prerequisite for all
// technology research.
func (w *World) BuildResearchCenter(c *company.Company, countryCode string) (*company.ResearchCenter, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !c.OperatesIn(countryCode) {
		return nil, ErrNotOperating
	}
	cost := catalog.Adjusted(catalog.BaseCostResearchCenter, w.Indicators.InflationRate)
	if c.Cash < cost {
		return nil, ErrInsufficientFunds
	}
	c.Cash -= cost
	rc := &company.ResearchCenter{
		ID:          uuid.NewString(),
		CountryCode: countryCode,
		City:        w.capitalCity(countryCode),
	}
	c.ResearchCenters = append(c.ResearchCenters, rc)
	return rc, nil
}

// ResearchTech purchases a technology outright.
func (w *World) ResearchTech(c *company.Company, techID string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	tech, ok := catalog.TechByID(techID)
	if !ok {
		return fmt.Errorf("%w: unknown technology %q", ErrInvalidTarget, techID)
	}
	if c.HasTech(techID) {
		return fmt.Errorf("%w: %s already researched", ErrLimitReached, tech.Name)
	}
	if len(c.ResearchCenters) == 0 {
		return fmt.Errorf("%w: research center required", ErrInvalidTarget)
	}
	cost := catalog.Adjusted(tech.Cost, w.Indicators.InflationRate)
	if c.Cash < cost {
		return ErrInsufficientFunds
	}
	c.Cash -= cost
	c.Technologies = append(c.Technologies, techID)
	if c.IsPlayer {
		w.AddNews(CategoryPlayer, fmt.Sprintf("%s research complete.", tech.Name))
	}
	return nil
}

// ExpandCountry enters a new market.
func (w *World) ExpandCountry(c *company.Company, countryCode string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.CountryIndex[countryCode]; !ok {
		return fmt.Errorf("%w: unknown country %q", ErrInvalidTarget, countryCode)
	}
	if c.OperatesIn(countryCode) {
		return fmt.Errorf("%w: already operating in %s", ErrLimitReached, countryCode)
	}
	cost := catalog.Adjusted(catalog.BaseCostCountryExpansion, w.Indicators.InflationRate)
	if c.Cash < cost {
		return ErrInsufficientFunds
	}
	c.Cash -= cost
	c.OperatingCountries = append(c.OperatingCountries, countryCode)
	if c.IsPlayer {
		w.AddNews(CategoryPlayer, fmt.Sprintf("Expanded operations into %s.", w.CountryIndex[countryCode].Name))
	}
	return nil
}

// TakeLoan draws one of the standing credit lines at the current market
// rate plus premium.
func (w *World) TakeLoan(c *company.Company, offerIndex int) (*company.Loan, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if offerIndex < 0 || offerIndex >= len(company.LoanOffers) {
		return nil, fmt.Errorf("%w: no such loan offer", ErrInvalidTarget)
	}
	offer := company.LoanOffers[offerIndex]
	l := company.NewLoan(offer.Amount, w.Indicators.InterestRate+company.LoanRatePremium, offer.TermDays)
	c.Loans = append(c.Loans, l)
	c.Cash += offer.Amount
	if c.IsPlayer {
		w.AddNews(CategoryPlayer, fmt.Sprintf("Borrowed %s over %d days.", money(offer.Amount), offer.TermDays))
	}
	return l, nil
}

// RepayLoan applies a lump-sum payment to a loan, dropping it when
// settled.
func (w *World) RepayLoan(c *company.Company, loanID string, amount float64) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if amount <= 0 {
		return fmt.Errorf("%w: repayment must be positive", ErrInvalidTarget)
	}
	for i, l := range c.Loans {
		if l.ID != loanID {
			continue
		}
		if amount > l.Balance {
			amount = l.Balance
		}
		if c.Cash < amount {
			return ErrInsufficientFunds
		}
		c.Cash -= amount
		l.Repay(amount)
		if l.Settled() {
			c.Loans = append(c.Loans[:i], c.Loans[i+1:]...)
		}
		return nil
	}
	return fmt.Errorf("%w: loan not found", ErrInvalidTarget)
}

// GoPublic lists the company on the exchange.
func (w *World) GoPublic(c *company.Company) (float64, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if c.IsPublic {
		return 0, ErrAlreadyPublic
	}
	proceeds, err := w.executeIPO(c)
	if err != nil {
		return 0, err
	}
	if c.IsPlayer {
		w.AddNews(CategoryPlayer, fmt.Sprintf("IPO complete: raised %s at %s per share.", money(proceeds), money(c.SharePrice)))
	}
	return proceeds, nil
}

// BuyShares purchases equity in a listed company at the current price,
// carried at running average cost.
func (w *World) BuyShares(buyer *company.Company, targetID string, shares int) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	target := w.CompanyByID(targetID)
	if target == nil || target == buyer {
		return fmt.Errorf("%w: unknown company", ErrInvalidTarget)
	}
	if !target.IsPublic {
		return fmt.Errorf("%w: %s is not listed", ErrInvalidTarget, target.Name)
	}
	if shares <= 0 {
		return fmt.Errorf("%w: share count must be positive", ErrInvalidTarget)
	}
	cost := float64(shares) * target.SharePrice
	if buyer.Cash < cost {
		return ErrInsufficientFunds
	}
	buyer.Cash -= cost

	h := buyer.Holding(targetID)
	if h == nil {
		buyer.Holdings = append(buyer.Holdings, &company.ShareHolding{
			CompanyID: targetID, Shares: shares, AvgCost: target.SharePrice,
		})
		return nil
	}
	total := h.Shares + shares
	h.AvgCost = (float64(h.Shares)*h.AvgCost + cost) / float64(total)
	h.Shares = total
	return nil
}

// SellShares liquidates part of a holding at the current price.
func (w *World) SellShares(seller *company.Company, targetID string, shares int) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	target := w.CompanyByID(targetID)
	if target == nil {
		return fmt.Errorf("%w: unknown company", ErrInvalidTarget)
	}
	h := seller.Holding(targetID)
	if h == nil || shares <= 0 || shares > h.Shares {
		return fmt.Errorf("%w: not enough shares held", ErrInvalidTarget)
	}
	seller.Cash += float64(shares) * target.SharePrice
	h.Shares -= shares
	if h.Shares == 0 {
		for i, held := range seller.Holdings {
			if held == h {
				seller.Holdings = append(seller.Holdings[:i], seller.Holdings[i+1:]...)
				break
			}
		}
	}
	return nil
}

// InvestQuality buys a fixed +10 improvement for one product.
func (w *World) InvestQuality(c *company.Company, productID string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := catalog.ProductByID(productID); !ok {
		return fmt.Errorf("%w: unknown product %q", ErrInvalidTarget, productID)
	}
	cost := catalog.Adjusted(catalog.BaseCostQualityInvestment, w.Indicators.InflationRate)
	if c.Cash < cost {
		return ErrInsufficientFunds
	}
	c.Cash -= cost
	c.SetQuality(productID, c.Quality(productID)+10)
	return nil
}

// SetPrice overrides the shelf price for a product in one store.
func (w *World) SetPrice(c *company.Company, storeID, productID string, price float64) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if price < 0 {
		return fmt.Errorf("%w: price must be non-negative", ErrInvalidTarget)
	}
	for _, s := range c.Stores {
		if s.ID != storeID {
			continue
		}
		it := s.Item(productID)
		if it == nil {
			return fmt.Errorf("%w: product not carried", ErrInvalidTarget)
		}
		it.Price = price
		return nil
	}
	return fmt.Errorf("%w: store not found", ErrInvalidTarget)
}

// SetCampaign starts or stops a marketing push for a product through the
// firm in the given country.
func (w *World) SetCampaign(c *company.Company, firmID, productID string, active bool) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, firm := range c.MarketingFirms {
		if firm.ID != firmID {
			continue
		}
		for i := range firm.Campaigns {
			if firm.Campaigns[i].ProductID == productID {
				if active && !firm.Campaigns[i].Active && firm.ActiveCampaigns() >= maxCampaignsPerFirm {
					return fmt.Errorf("%w: firm already runs %d campaigns", ErrLimitReached, maxCampaignsPerFirm)
				}
				firm.Campaigns[i].Active = active
				return nil
			}
		}
		if !active {
			return nil
		}
		if firm.ActiveCampaigns() >= maxCampaignsPerFirm {
			return fmt.Errorf("%w: firm already runs %d campaigns", ErrLimitReached, maxCampaignsPerFirm)
		}
		firm.Campaigns = append(firm.Campaigns, company.Campaign{ProductID: productID, Active: true})
		return nil
	}
	return fmt.Errorf("%w: marketing firm not found", ErrInvalidTarget)
}

// SetFirmAutomation hands one marketing firm's campaign selection to the
// automated manager, or takes it back.
func (w *World) SetFirmAutomation(c *company.Company, firmID string, auto bool) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, firm := range c.MarketingFirms {
		if firm.ID == firmID {
			firm.AutoManage = auto
			return nil
		}
	}
	return fmt.Errorf("%w: marketing firm not found", ErrInvalidTarget)
}
