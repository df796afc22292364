// Player action endpoints. All POST, admin-gated: the game client holds
// the token and acts on behalf of the player company.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/keldine/worldtycoon/internal/catalog"
)

func (s *Server) registerActions(mux *http.ServeMux) {
	mux.HandleFunc("/api/v1/actions/store", s.adminOnly(s.handleBuildStore))
	mux.HandleFunc("/api/v1/actions/factory", s.adminOnly(s.handleBuildFactory))
	mux.HandleFunc("/api/v1/actions/farm", s.adminOnly(s.handleBuildFarm))
	mux.HandleFunc("/api/v1/actions/marketing", s.adminOnly(s.handleBuildMarketing))
	mux.HandleFunc("/api/v1/actions/research-center", s.adminOnly(s.handleBuildResearchCenter))
	mux.HandleFunc("/api/v1/actions/research", s.adminOnly(s.handleResearch))
	mux.HandleFunc("/api/v1/actions/expand", s.adminOnly(s.handleExpand))
	mux.HandleFunc("/api/v1/actions/loan", s.adminOnly(s.handleLoan))
	mux.HandleFunc("/api/v1/actions/repay", s.adminOnly(s.handleRepay))
	mux.HandleFunc("/api/v1/actions/ipo", s.adminOnly(s.handleIPO))
	mux.HandleFunc("/api/v1/actions/shares", s.adminOnly(s.handleShares))
	mux.HandleFunc("/api/v1/actions/price", s.adminOnly(s.handlePrice))
	mux.HandleFunc("/api/v1/actions/campaign", s.adminOnly(s.handleCampaign))
	mux.HandleFunc("/api/v1/actions/quality", s.adminOnly(s.handleQuality))
	mux.HandleFunc("/api/v1/actions/automation", s.adminOnly(s.handleAutomation))
}

func decodeAction(w http.ResponseWriter, r *http.Request, req any) bool {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return false
	}
	return true
}

func (s *Server) handleBuildStore(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Type    string `json:"type"`
		Country string `json:"country"`
	}
	if !decodeAction(w, r, &req) {
		return
	}
	store, err := s.World.BuildStore(s.World.Player(), catalog.StoreType(req.Type), req.Country)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, store)
}

func (s *Server) handleBuildFactory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Output  string `json:"output"`
		Country string `json:"country"`
	}
	if !decodeAction(w, r, &req) {
		return
	}
	f, err := s.World.BuildFactory(s.World.Player(), req.Output, req.Country)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, f)
}

func (s *Server) handleBuildFarm(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Crop    string `json:"crop"`
		Country string `json:"country"`
	}
	if !decodeAction(w, r, &req) {
		return
	}
	f, err := s.World.BuildFarm(s.World.Player(), req.Crop, req.Country)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, f)
}

func (s *Server) handleBuildMarketing(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Country string `json:"country"`
	}
	if !decodeAction(w, r, &req) {
		return
	}
	firm, err := s.World.BuildMarketingFirm(s.World.Player(), req.Country)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, firm)
}

func (s *Server) handleBuildResearchCenter(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Country string `json:"country"`
	}
	if !decodeAction(w, r, &req) {
		return
	}
	rc, err := s.World.BuildResearchCenter(s.World.Player(), req.Country)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, rc)
}

func (s *Server) handleResearch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Tech string `json:"tech"`
	}
	if !decodeAction(w, r, &req) {
		return
	}
	if err := s.World.ResearchTech(s.World.Player(), req.Tech); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]bool{"researched": true})
}

func (s *Server) handleExpand(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Country string `json:"country"`
	}
	if !decodeAction(w, r, &req) {
		return
	}
	if err := s.World.ExpandCountry(s.World.Player(), req.Country); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]bool{"expanded": true})
}

func (s *Server) handleLoan(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Offer int `json:"offer"`
	}
	if !decodeAction(w, r, &req) {
		return
	}
	l, err := s.World.TakeLoan(s.World.Player(), req.Offer)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, l)
}

func (s *Server) handleRepay(w http.ResponseWriter, r *http.Request) {
	var req struct {
		LoanID string  `json:"loan_id"`
		Amount float64 `json:"amount"`
	}
	if !decodeAction(w, r, &req) {
		return
	}
	if err := s.World.RepayLoan(s.World.Player(), req.LoanID, req.Amount); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]bool{"repaid": true})
}

func (s *Server) handleIPO(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	proceeds, err := s.World.GoPublic(s.World.Player())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]float64{"proceeds": proceeds})
}

func (s *Server) handleShares(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Company string `json:"company"`
		Shares  int    `json:"shares"`
		Sell    bool   `json:"sell"`
	}
	if !decodeAction(w, r, &req) {
		return
	}
	var err error
	if req.Sell {
		err = s.World.SellShares(s.World.Player(), req.Company, req.Shares)
	} else {
		err = s.World.BuyShares(s.World.Player(), req.Company, req.Shares)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]bool{"done": true})
}

func (s *Server) handlePrice(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Store   string  `json:"store"`
		Product string  `json:"product"`
		Price   float64 `json:"price"`
	}
	if !decodeAction(w, r, &req) {
		return
	}
	if err := s.World.SetPrice(s.World.Player(), req.Store, req.Product, req.Price); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]bool{"priced": true})
}

func (s *Server) handleCampaign(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Firm    string `json:"firm"`
		Product string `json:"product"`
		Active  bool   `json:"active"`
	}
	if !decodeAction(w, r, &req) {
		return
	}
	if err := s.World.SetCampaign(s.World.Player(), req.Firm, req.Product, req.Active); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]bool{"updated": true})
}

func (s *Server) handleQuality(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Product string `json:"product"`
	}
	if !decodeAction(w, r, &req) {
		return
	}
	if err := s.World.InvestQuality(s.World.Player(), req.Product); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]bool{"invested": true})
}

func (s *Server) handleAutomation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SupplyStores    *bool `json:"supply_stores"`
		StockExternally *bool `json:"stock_externally"`
		PriceProducts   *bool `json:"price_products"`
		BuyMaterials    *bool `json:"buy_materials"`
		InvestQuality   *bool `json:"invest_quality"`

		// Campaign management is a per-firm toggle.
		Firm            string `json:"firm"`
		ManageCampaigns *bool  `json:"manage_campaigns"`
	}
	if !decodeAction(w, r, &req) {
		return
	}
	if req.Firm != "" {
		if req.ManageCampaigns == nil {
			http.Error(w, "manage_campaigns required with firm", http.StatusBadRequest)
			return
		}
		if err := s.World.SetFirmAutomation(s.World.Player(), req.Firm, *req.ManageCampaigns); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, map[string]bool{"updated": true})
		return
	}
	s.World.Lock()
	auto := &s.World.Player().Automation
	if req.SupplyStores != nil {
		auto.SupplyStores = *req.SupplyStores
	}
	if req.StockExternally != nil {
		auto.StockExternally = *req.StockExternally
	}
	if req.PriceProducts != nil {
		auto.PriceProducts = *req.PriceProducts
	}
	if req.BuyMaterials != nil {
		auto.BuyMaterials = *req.BuyMaterials
	}
	if req.InvestQuality != nil {
		auto.InvestQuality = *req.InvestQuality
	}
	result := *auto
	s.World.Unlock()
	writeJSON(w, result)
}
