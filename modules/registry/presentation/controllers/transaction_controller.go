package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/landchain-vn/landchain/modules/registry/domain/entities/transaction"
	"github.com/landchain-vn/landchain/modules/registry/presentation/controllers/dtos"
	"github.com/landchain-vn/landchain/modules/registry/services"
)

type TransactionController struct {
	service  *services.TransactionService
	basePath string
}

func NewTransactionController(service *services.TransactionService) *TransactionController {
	return &TransactionController{
		service:  service,
		basePath: "/api/transactions",
	}
}

func (c *TransactionController) Key() string {
	return c.basePath
}

func (c *TransactionController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()

	router.HandleFunc("/transfer", c.createTransfer).Methods(http.MethodPost)
	router.HandleFunc("/confirm", c.confirmTransfer).Methods(http.MethodPost)
	router.HandleFunc("/split", c.createSplit).Methods(http.MethodPost)
	router.HandleFunc("/merge", c.createMerge).Methods(http.MethodPost)
	router.HandleFunc("/change-purpose", c.createChangePurpose).Methods(http.MethodPost)
	router.HandleFunc("/reissue", c.createReissue).Methods(http.MethodPost)

	router.HandleFunc("/{txID}/process", c.process).Methods(http.MethodPost)
	router.HandleFunc("/{txID}/forward", c.forward).Methods(http.MethodPost)
	router.HandleFunc("/{txID}/approve/transfer", c.approveTransfer).Methods(http.MethodPost)
	router.HandleFunc("/{txID}/approve/split", c.approveSplit).Methods(http.MethodPost)
	router.HandleFunc("/{txID}/approve/merge", c.approveMerge).Methods(http.MethodPost)
	router.HandleFunc("/{txID}/approve/change-purpose", c.approveChangePurpose).Methods(http.MethodPost)
	router.HandleFunc("/{txID}/approve/reissue", c.approveReissue).Methods(http.MethodPost)
	router.HandleFunc("/{txID}/reject", c.reject).Methods(http.MethodPost)

	router.HandleFunc("", c.listAll).Methods(http.MethodGet)
	router.HandleFunc("/status/{status}", c.listByStatus).Methods(http.MethodGet)
	router.HandleFunc("/owner/{ownerID}", c.listByOwner).Methods(http.MethodGet)
	router.HandleFunc("/{txID}/history", c.history).Methods(http.MethodGet)
	router.HandleFunc("/{txID}", c.getByID).Methods(http.MethodGet)
}

// created answers a creation. When the transaction ID could not be resolved
// the write still committed, so the response stays successful with a null ID.
func (c *TransactionController) created(w http.ResponseWriter, message string, res *services.CreateResult) {
	if res.Transaction != nil {
		writeJSON(w, http.StatusCreated, message, res.Transaction)
		return
	}
	var txID any
	if res.TxID != "" {
		txID = res.TxID
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": true,
		"message": message,
		"txID":    txID,
	})
}

func (c *TransactionController) createTransfer(w http.ResponseWriter, r *http.Request) {
	dto := &dtos.CreateTransferDTO{}
	if err := decode(r, dto); err != nil {
		writeError(w, r, err)
		return
	}
	res, err := c.service.Create(r.Context(), dto.ToRequest())
	if err != nil {
		writeError(w, r, err)
		return
	}
	c.created(w, "transfer request created", res)
}

func (c *TransactionController) confirmTransfer(w http.ResponseWriter, r *http.Request) {
	dto := &dtos.ConfirmTransferDTO{}
	if err := decode(r, dto); err != nil {
		writeError(w, r, err)
		return
	}
	tx, err := c.service.Confirm(r.Context(), dto.TxID, *dto.IsAccepted)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, "transfer confirmation recorded", tx)
}

func (c *TransactionController) createSplit(w http.ResponseWriter, r *http.Request) {
	dto := &dtos.CreateSplitDTO{}
	if err := decode(r, dto); err != nil {
		writeError(w, r, err)
		return
	}
	res, err := c.service.Create(r.Context(), dto.ToRequest())
	if err != nil {
		writeError(w, r, err)
		return
	}
	c.created(w, "split request created", res)
}

func (c *TransactionController) createMerge(w http.ResponseWriter, r *http.Request) {
	dto := &dtos.CreateMergeDTO{}
	if err := decode(r, dto); err != nil {
		writeError(w, r, err)
		return
	}
	res, err := c.service.Create(r.Context(), dto.ToRequest())
	if err != nil {
		writeError(w, r, err)
		return
	}
	c.created(w, "merge request created", res)
}

func (c *TransactionController) createChangePurpose(w http.ResponseWriter, r *http.Request) {
	dto := &dtos.CreateChangePurposeDTO{}
	if err := decode(r, dto); err != nil {
		writeError(w, r, err)
		return
	}
	res, err := c.service.Create(r.Context(), dto.ToRequest())
	if err != nil {
		writeError(w, r, err)
		return
	}
	c.created(w, "change of purpose request created", res)
}

func (c *TransactionController) createReissue(w http.ResponseWriter, r *http.Request) {
	dto := &dtos.CreateReissueDTO{}
	if err := decode(r, dto); err != nil {
		writeError(w, r, err)
		return
	}
	res, err := c.service.Create(r.Context(), dto.ToRequest())
	if err != nil {
		writeError(w, r, err)
		return
	}
	c.created(w, "reissue request created", res)
}

func (c *TransactionController) process(w http.ResponseWriter, r *http.Request) {
	dto := &dtos.ProcessDTO{}
	if err := decode(r, dto); err != nil {
		writeError(w, r, err)
		return
	}
	tx, err := c.service.Process(r.Context(), mux.Vars(r)["txID"], transaction.Decision(dto.Decision), dto.Reason)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, "transaction processed", tx)
}

func (c *TransactionController) forward(w http.ResponseWriter, r *http.Request) {
	tx, err := c.service.Forward(r.Context(), mux.Vars(r)["txID"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, "transaction forwarded to the land authority", tx)
}

func (c *TransactionController) approveTransfer(w http.ResponseWriter, r *http.Request) {
	tx, err := c.service.ApproveTransfer(r.Context(), mux.Vars(r)["txID"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, "transfer approved", tx)
}

func (c *TransactionController) approveSplit(w http.ResponseWriter, r *http.Request) {
	dto := &dtos.ApproveSplitDTO{}
	if err := decode(r, dto); err != nil {
		writeError(w, r, err)
		return
	}
	tx, err := c.service.ApproveSplit(r.Context(), mux.Vars(r)["txID"], dto.ToSpecs())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, "split approved", tx)
}

func (c *TransactionController) approveMerge(w http.ResponseWriter, r *http.Request) {
	dto := &dtos.ApproveMergeDTO{}
	if err := decode(r, dto); err != nil {
		writeError(w, r, err)
		return
	}
	tx, err := c.service.ApproveMerge(r.Context(), mux.Vars(r)["txID"], dto.SelectedLandID, dto.NewParcel.ToSpec())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, "merge approved", tx)
}

func (c *TransactionController) approveChangePurpose(w http.ResponseWriter, r *http.Request) {
	tx, err := c.service.ApproveChangePurpose(r.Context(), mux.Vars(r)["txID"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, "change of purpose approved", tx)
}

func (c *TransactionController) approveReissue(w http.ResponseWriter, r *http.Request) {
	dto := &dtos.ApproveReissueDTO{}
	if err := decode(r, dto); err != nil {
		writeError(w, r, err)
		return
	}
	tx, err := c.service.ApproveReissue(r.Context(), mux.Vars(r)["txID"], dto.NewCertificateID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, "certificate reissue approved", tx)
}

func (c *TransactionController) reject(w http.ResponseWriter, r *http.Request) {
	dto := &dtos.RejectDTO{}
	if err := decode(r, dto); err != nil {
		writeError(w, r, err)
		return
	}
	tx, err := c.service.Reject(r.Context(), mux.Vars(r)["txID"], dto.Reason)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, "transaction rejected", tx)
}

func (c *TransactionController) getByID(w http.ResponseWriter, r *http.Request) {
	tx, err := c.service.GetByID(r.Context(), mux.Vars(r)["txID"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, "transaction found", tx)
}

func (c *TransactionController) listByOwner(w http.ResponseWriter, r *http.Request) {
	txs, err := c.service.ListByOwner(r.Context(), mux.Vars(r)["ownerID"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, "transactions found", txs)
}

func (c *TransactionController) listByStatus(w http.ResponseWriter, r *http.Request) {
	txs, err := c.service.ListByStatus(r.Context(), transaction.Status(mux.Vars(r)["status"]))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, "transactions found", txs)
}

func (c *TransactionController) listAll(w http.ResponseWriter, r *http.Request) {
	txs, err := c.service.ListAll(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, "transactions found", txs)
}

func (c *TransactionController) history(w http.ResponseWriter, r *http.Request) {
	records, err := c.service.History(r.Context(), mux.Vars(r)["txID"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, "transaction history", records)
}
