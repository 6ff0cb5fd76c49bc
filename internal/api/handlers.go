package api

import (
	"encoding/json"
	"net/http"
	"sort"

	"github.com/mohitk/splitledger/internal/models"
)

type memberRequest struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

type createGroupRequest struct {
	Name    string          `json:"name"`
	Members []memberRequest `json:"members"`
}

type groupResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Members   []memberRequest `json:"members"`
	CreatedAt int64           `json:"created_at"`
}

func toGroupResponse(g *models.Group) groupResponse {
	resp := groupResponse{ID: g.ID, Name: g.Name, CreatedAt: g.CreatedAt}
	for _, m := range g.Members {
		resp.Members = append(resp.Members, memberRequest{ID: m.ID, DisplayName: m.DisplayName})
	}
	return resp
}

func (a *API) createGroup(w http.ResponseWriter, r *http.Request) {
	var req createGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "unable to decode and parse json")
		return
	}

	members := make([]models.Participant, 0, len(req.Members))
	for _, m := range req.Members {
		members = append(members, models.Participant{ID: m.ID, DisplayName: m.DisplayName})
	}

	group, err := a.ledgerSvc.CreateGroup(r.Context(), req.Name, members)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toGroupResponse(group))
}

func (a *API) getGroup(w http.ResponseWriter, r *http.Request) {
	group, err := a.ledgerSvc.Group(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toGroupResponse(group))
}

type splitRequest struct {
	ParticipantID string `json:"participant_id"`
	Share         string `json:"share"`
}

type createExpenseRequest struct {
	PayerID     string         `json:"payer_id"`
	Amount      string         `json:"amount"`
	Splits      []splitRequest `json:"splits"`
	Description string         `json:"description"`
}

type expenseResponse struct {
	ID          string        `json:"id"`
	GroupID     string        `json:"group_id"`
	PayerID     string        `json:"payer_id"`
	AmountMinor int64         `json:"amount_minor"`
	Amount      string        `json:"amount"`
	Splits      []splitDetail `json:"splits"`
	Description string        `json:"description,omitempty"`
	CreatedAt   int64         `json:"created_at"`
}

type splitDetail struct {
	ParticipantID string `json:"participant_id"`
	ShareMinor    int64  `json:"share_minor"`
	Share         string `json:"share"`
}

func (a *API) createExpense(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "unable to decode and parse json")
		return
	}

	total, err := a.parseAmount(req.Amount)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	// nil means equal split across the group; an explicit list is exact.
	var splits []models.Split
	if req.Splits != nil {
		splits = make([]models.Split, 0, len(req.Splits))
		for _, s := range req.Splits {
			share, err := a.parseAmount(s.Share)
			if err != nil {
				writeBadRequest(w, err.Error())
				return
			}
			splits = append(splits, models.Split{ParticipantID: s.ParticipantID, ShareAmount: share})
		}
	}

	expense, err := a.ledgerSvc.RecordExpense(r.Context(), r.PathValue("id"), req.PayerID, total, splits, req.Description)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := expenseResponse{
		ID:          expense.ID,
		GroupID:     expense.GroupID,
		PayerID:     expense.PayerID,
		AmountMinor: expense.TotalAmount,
		Amount:      a.format(expense.TotalAmount),
		Description: expense.Description,
		CreatedAt:   expense.CreatedAt,
	}
	for _, s := range expense.Splits {
		resp.Splits = append(resp.Splits, splitDetail{
			ParticipantID: s.ParticipantID,
			ShareMinor:    s.ShareAmount,
			Share:         a.format(s.ShareAmount),
		})
	}
	writeJSON(w, http.StatusCreated, resp)
}

type createTransferRequest struct {
	FromID string `json:"from_id"`
	ToID   string `json:"to_id"`
	Amount string `json:"amount"`
	Note   string `json:"note"`
}

type transferResponse struct {
	ID          string `json:"id"`
	GroupID     string `json:"group_id"`
	FromID      string `json:"from_id"`
	ToID        string `json:"to_id"`
	AmountMinor int64  `json:"amount_minor"`
	Amount      string `json:"amount"`
	Note        string `json:"note,omitempty"`
	CreatedAt   int64  `json:"created_at"`
}

func (a *API) toTransferResponse(t *models.TransferRecord) transferResponse {
	return transferResponse{
		ID:          t.ID,
		GroupID:     t.GroupID,
		FromID:      t.FromID,
		ToID:        t.ToID,
		AmountMinor: t.Amount,
		Amount:      a.format(t.Amount),
		Note:        t.Note,
		CreatedAt:   t.CreatedAt,
	}
}

func (a *API) createTransfer(w http.ResponseWriter, r *http.Request) {
	var req createTransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "unable to decode and parse json")
		return
	}

	amount, err := a.parseAmount(req.Amount)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	transfer, err := a.ledgerSvc.RecordTransfer(r.Context(), r.PathValue("id"), req.FromID, req.ToID, amount, req.Note)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, a.toTransferResponse(transfer))
}

type balanceEntry struct {
	ParticipantID string `json:"participant_id"`
	NetMinor      int64  `json:"net_minor"`
	Net           string `json:"net"`
}

type balancesResponse struct {
	GroupID  string         `json:"group_id"`
	Balances []balanceEntry `json:"balances"`
}

func (a *API) getBalances(w http.ResponseWriter, r *http.Request) {
	groupID := r.PathValue("id")
	balances, err := a.ledgerSvc.Balances(r.Context(), groupID)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := balancesResponse{GroupID: groupID}
	for id, net := range balances {
		resp.Balances = append(resp.Balances, balanceEntry{
			ParticipantID: id,
			NetMinor:      net,
			Net:           a.format(net),
		})
	}
	sort.Slice(resp.Balances, func(i, j int) bool {
		return resp.Balances[i].ParticipantID < resp.Balances[j].ParticipantID
	})
	writeJSON(w, http.StatusOK, resp)
}

type planEntryPayload struct {
	FromID      string `json:"from_id"`
	ToID        string `json:"to_id"`
	AmountMinor int64  `json:"amount_minor"`
	Amount      string `json:"amount,omitempty"`
}

type planResponse struct {
	GroupID     string             `json:"group_id"`
	GeneratedAt int64              `json:"generated_at"`
	Entries     []planEntryPayload `json:"entries"`
	Summary     []string           `json:"summary"`
}

func (a *API) getPlan(w http.ResponseWriter, r *http.Request) {
	plan, summary, err := a.ledgerSvc.PlanSettlement(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	resp := planResponse{GroupID: plan.GroupID, GeneratedAt: plan.GeneratedAt, Summary: summary}
	for _, e := range plan.Entries {
		resp.Entries = append(resp.Entries, planEntryPayload{
			FromID:      e.FromID,
			ToID:        e.ToID,
			AmountMinor: e.Amount,
			Amount:      a.format(e.Amount),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

type commitPlanRequest struct {
	GeneratedAt int64              `json:"generated_at"`
	Entries     []planEntryPayload `json:"entries"`
}

type commitPlanResponse struct {
	Transfers []transferResponse `json:"transfers"`
	Inserted  int                `json:"inserted"`
}

func (a *API) commitPlan(w http.ResponseWriter, r *http.Request) {
	var req commitPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "unable to decode and parse json")
		return
	}

	plan := &models.SettlementPlan{GroupID: r.PathValue("id"), GeneratedAt: req.GeneratedAt}
	for _, e := range req.Entries {
		plan.Entries = append(plan.Entries, models.PlanEntry{
			FromID: e.FromID,
			ToID:   e.ToID,
			Amount: e.AmountMinor,
		})
	}

	transfers, inserted, err := a.ledgerSvc.CommitPlan(r.Context(), plan)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := commitPlanResponse{Inserted: inserted}
	for i := range transfers {
		resp.Transfers = append(resp.Transfers, a.toTransferResponse(&transfers[i]))
	}
	writeJSON(w, http.StatusCreated, resp)
}

type createDebtRequest struct {
	OwnerID        string `json:"owner_id"`
	CounterpartyID string `json:"counterparty_id"`
	Direction      string `json:"direction"`
	Amount         string `json:"amount"`
	Description    string `json:"description"`
}

type debtResponse struct {
	ID                   string   `json:"id"`
	CreditorID           string   `json:"creditor_id"`
	DebtorID             string   `json:"debtor_id"`
	OriginalMinor        int64    `json:"original_minor"`
	Original             string   `json:"original"`
	SettledMinor         int64    `json:"settled_minor"`
	Settled              string   `json:"settled"`
	RemainingMinor       int64    `json:"remaining_minor"`
	Remaining            string   `json:"remaining"`
	Status               string   `json:"status"`
	RelatedSettlementIDs []string `json:"related_settlement_ids,omitempty"`
	Description          string   `json:"description,omitempty"`
	CreatedAt            int64    `json:"created_at"`
}

func (a *API) toDebtResponse(d *models.PeerDebt) debtResponse {
	return debtResponse{
		ID:                   d.ID,
		CreditorID:           d.CreditorID,
		DebtorID:             d.DebtorID,
		OriginalMinor:        d.OriginalAmount,
		Original:             a.format(d.OriginalAmount),
		SettledMinor:         d.SettledAmount,
		Settled:              a.format(d.SettledAmount),
		RemainingMinor:       d.Remaining(),
		Remaining:            a.format(d.Remaining()),
		Status:               string(d.Status),
		RelatedSettlementIDs: d.RelatedSettlementIDs,
		Description:          d.Description,
		CreatedAt:            d.CreatedAt,
	}
}

func (a *API) createDebt(w http.ResponseWriter, r *http.Request) {
	var req createDebtRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "unable to decode and parse json")
		return
	}

	amount, err := a.parseAmount(req.Amount)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	debt, err := a.debtSvc.RecordDebt(r.Context(), req.OwnerID, req.CounterpartyID, models.DebtDirection(req.Direction), amount, req.Description)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, a.toDebtResponse(debt))
}

func (a *API) getDebt(w http.ResponseWriter, r *http.Request) {
	debt, err := a.debtSvc.GetDebt(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a.toDebtResponse(debt))
}

func (a *API) listDebts(w http.ResponseWriter, r *http.Request) {
	list, err := a.debtSvc.ListDebts(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]debtResponse, 0, len(list))
	for i := range list {
		resp = append(resp, a.toDebtResponse(&list[i]))
	}
	writeJSON(w, http.StatusOK, resp)
}

type settleDebtRequest struct {
	Amount       string `json:"amount"`
	SettlementID string `json:"settlement_id"`
}

func (a *API) settleDebt(w http.ResponseWriter, r *http.Request) {
	var req settleDebtRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "unable to decode and parse json")
		return
	}

	amount, err := a.parseAmount(req.Amount)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	debt, err := a.debtSvc.SettleDebt(r.Context(), r.PathValue("id"), amount, req.SettlementID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a.toDebtResponse(debt))
}
