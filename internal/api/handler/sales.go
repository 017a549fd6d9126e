package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/vfg2006/sales-tracker-api/infrastructure/spreadsheet"
	"github.com/vfg2006/sales-tracker-api/internal/domain"
	"github.com/vfg2006/sales-tracker-api/internal/usecases/selling"
	"github.com/vfg2006/sales-tracker-api/pkg/apiErrors"
	"github.com/vfg2006/sales-tracker-api/pkg/log"
	"github.com/vfg2006/sales-tracker-api/pkg/middleware"
	"github.com/vfg2006/sales-tracker-api/pkg/utils"
)

// parseSaleFilter lê start_date e end_date (YYYY-MM-DD) no fuso do serviço
func parseSaleFilter(r *http.Request, loc *time.Location) (domain.SaleFilter, error) {
	query := r.URL.Query()

	startDate, err := utils.ParseDate(query.Get("start_date"), loc)
	if err != nil {
		return domain.SaleFilter{}, errors.Wrap(err, "start_date")
	}

	endDate, err := utils.ParseDate(query.Get("end_date"), loc)
	if err != nil {
		return domain.SaleFilter{}, errors.Wrap(err, "end_date")
	}

	return domain.SaleFilter{StartDate: startDate, EndDate: endDate}, nil
}

// withSeller resolve o usuário e o filtro de datas comuns às leituras de vendas
func withSeller(service selling.Seller, next func(w http.ResponseWriter, r *http.Request, userID int, filter domain.SaleFilter)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := middleware.UserFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		filter, err := parseSaleFilter(r, service.Location())
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Data inválida, use o formato YYYY-MM-DD", err.Error())
			return
		}

		next(w, r, userClaims.UserID, filter)
	}
}

// ListSales retorna a tabela de vendas já formatada, mais recente primeiro
func ListSales(service selling.Seller) http.HandlerFunc {
	return withSeller(service, func(w http.ResponseWriter, r *http.Request, userID int, filter domain.SaleFilter) {
		entries, err := service.ListLedger(r.Context(), userID, filter)
		if err != nil {
			handleSaleError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, entries)
	})
}

func CreateSale(service selling.Seller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := middleware.UserFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var req domain.NewSaleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		sale, err := service.AddSale(r.Context(), userClaims.UserID, req)
		if err != nil {
			handleSaleError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusCreated, sale)
	}
}

func DeleteSale(service selling.Seller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := middleware.UserFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da venda não fornecido", nil)
			return
		}

		if err := service.DeleteSale(r.Context(), userClaims.UserID, id); err != nil {
			handleSaleError(w, r, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func GetSalesStatistics(service selling.Seller) http.HandlerFunc {
	return withSeller(service, func(w http.ResponseWriter, r *http.Request, userID int, filter domain.SaleFilter) {
		stats, err := service.GetStatistics(r.Context(), userID, filter)
		if err != nil {
			handleSaleError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, stats)
	})
}

func GetDailySummaries(service selling.Seller) http.HandlerFunc {
	return withSeller(service, func(w http.ResponseWriter, r *http.Request, userID int, filter domain.SaleFilter) {
		summaries, err := service.GetDailySummaries(r.Context(), userID, filter)
		if err != nil {
			handleSaleError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, summaries)
	})
}

func GetSalesOverview(service selling.Seller) http.HandlerFunc {
	return withSeller(service, func(w http.ResponseWriter, r *http.Request, userID int, filter domain.SaleFilter) {
		overview, err := service.GetOverview(r.Context(), userID, filter)
		if err != nil {
			handleSaleError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, overview)
	})
}

// GetSplit calcula a divisão da parceria a partir do texto digitado no formulário
func GetSplit(service selling.Seller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		split := service.ComputeSplit(query.Get("my_investment"), query.Get("partner_investment"))
		writeJSON(w, r, http.StatusOK, split)
	}
}

// ExportSales devolve a planilha xlsx com as vendas do filtro
func ExportSales(service selling.Seller) http.HandlerFunc {
	return withSeller(service, func(w http.ResponseWriter, r *http.Request, userID int, filter domain.SaleFilter) {
		file, err := service.ExportLedger(r.Context(), userID, filter)
		if err != nil {
			handleSaleError(w, r, err)
			return
		}

		w.Header().Set("Content-Type", spreadsheet.ContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
		w.WriteHeader(http.StatusOK)

		if _, err := file.Content.WriteTo(w); err != nil {
			log.ForContext(r.Context()).WithError(err).Error("Erro ao enviar planilha")
		}
	})
}

func GetSnapshots(service selling.Seller) http.HandlerFunc {
	return withSeller(service, func(w http.ResponseWriter, r *http.Request, userID int, filter domain.SaleFilter) {
		snapshots, err := service.GetSnapshots(r.Context(), userID, filter.StartDate, filter.EndDate)
		if err != nil {
			handleSaleError(w, r, err)
			return
		}

		if snapshots == nil {
			snapshots = []*domain.DailySnapshot{}
		}

		writeJSON(w, r, http.StatusOK, snapshots)
	})
}

func handleSaleError(w http.ResponseWriter, r *http.Request, err error) {
	var saleErr *selling.SaleError
	if errors.As(err, &saleErr) {
		apiErrors.WriteError(w, saleErr.Code, saleErr.Err.Error(), saleErr.Details)
		return
	}

	log.ForContext(r.Context()).WithError(err).Error("Erro não mapeado nas vendas")
	apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno", nil)
}
