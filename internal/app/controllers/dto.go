package controllers

import (
	"github.com/Robson2726/Facilitta-sub000/internal/domain/models"
	"github.com/Robson2726/Facilitta-sub000/internal/domain/services"
)

// PackageDTO is a package in the wire vocabulary
type PackageDTO struct {
	ID                 uint                  `json:"id" example:"12"`
	MoradorID          uint                  `json:"morador_id" example:"3"`
	Morador            string                `json:"morador" example:"Ana Souza"`
	Rua                string                `json:"rua"`
	Numero             string                `json:"numero"`
	Bloco              string                `json:"bloco"`
	Apartamento        string                `json:"apartamento"`
	PorteiroID         uint                  `json:"porteiro_id"`
	Porteiro           string                `json:"porteiro"`
	DataRecebimento    string                `json:"data_recebimento" example:"2024-05-10T14:30:00-03:00"`
	Quantidade         int                   `json:"quantidade" example:"1"`
	Observacoes        string                `json:"observacoes"`
	Status             models.ExternalStatus `json:"status" example:"pending"`
	DataEntrega        *string               `json:"data_entrega"`
	PorteiroEntregaID  *uint                 `json:"porteiro_entrega_id"`
	PorteiroEntrega    *string               `json:"porteiro_entrega"`
	RetiradoPor        *string               `json:"retirado_por"`
	ObservacoesEntrega string                `json:"observacoes_entrega"`
}

func toPackageDTO(v models.PackageView) PackageDTO {
	return PackageDTO{
		ID:                 v.ID,
		MoradorID:          v.ResidentID,
		Morador:            v.ResidentName,
		Rua:                v.Street,
		Numero:             v.Number,
		Bloco:              v.Block,
		Apartamento:        v.Unit,
		PorteiroID:         v.ReceivedByID,
		Porteiro:           v.ReceivedByName,
		DataRecebimento:    formatTime(v.ReceivedAt),
		Quantidade:         v.Quantity,
		Observacoes:        v.Notes,
		Status:             v.Status.ToExternal(),
		DataEntrega:        formatTimePtr(v.DeliveredAt),
		PorteiroEntregaID:  v.DeliveredByID,
		PorteiroEntrega:    v.DeliveredByName,
		RetiradoPor:        v.RetrievedBy,
		ObservacoesEntrega: v.DeliveryNotes,
	}
}

func toPackageDTOs(views []models.PackageView) []PackageDTO {
	out := make([]PackageDTO, 0, len(views))
	for _, v := range views {
		out = append(out, toPackageDTO(v))
	}
	return out
}

// ResidentDTO is a resident in the wire vocabulary
type ResidentDTO struct {
	ID          uint   `json:"id" example:"3"`
	Nome        string `json:"nome" example:"Ana Souza"`
	Rua         string `json:"rua"`
	Numero      string `json:"numero"`
	Bloco       string `json:"bloco"`
	Apartamento string `json:"apartamento"`
	Telefone    string `json:"telefone"`
	Observacoes string `json:"observacoes"`
}

func toResidentDTO(r models.Resident) ResidentDTO {
	return ResidentDTO{
		ID:          r.ID,
		Nome:        r.Name,
		Rua:         r.Street,
		Numero:      r.Number,
		Bloco:       r.Block,
		Apartamento: r.Unit,
		Telefone:    r.Phone,
		Observacoes: r.Notes,
	}
}

func toResidentDTOs(residents []models.Resident) []ResidentDTO {
	out := make([]ResidentDTO, 0, len(residents))
	for _, r := range residents {
		out = append(out, toResidentDTO(r))
	}
	return out
}

// SuggestionDTO is a ranked resident name
type SuggestionDTO struct {
	ID              uint   `json:"id"`
	Nome            string `json:"nome"`
	Bloco           string `json:"bloco"`
	Apartamento     string `json:"apartamento"`
	TotalEncomendas int64  `json:"total_encomendas"`
}

func toSuggestionDTOs(suggestions []models.ResidentSuggestion) []SuggestionDTO {
	out := make([]SuggestionDTO, 0, len(suggestions))
	for _, s := range suggestions {
		out = append(out, SuggestionDTO{
			ID:              s.ID,
			Nome:            s.Name,
			Bloco:           s.Block,
			Apartamento:     s.Unit,
			TotalEncomendas: s.PackageCount,
		})
	}
	return out
}

// UserDTO is a staff account in the wire vocabulary
type UserDTO struct {
	ID     uint                      `json:"id" example:"2"`
	Login  string                    `json:"login" example:"joao"`
	Nome   string                    `json:"nome" example:"João Lima"`
	Email  string                    `json:"email"`
	Nivel  models.ExternalRole       `json:"nivel" example:"porteiro"`
	Status models.ExternalUserStatus `json:"status" example:"ativo"`
}

func toUserDTO(u models.User) UserDTO {
	return UserDTO{
		ID:     u.ID,
		Login:  u.Login,
		Nome:   u.FullName,
		Email:  u.Email,
		Nivel:  u.AccessLevel.ToExternal(),
		Status: u.Status.ToExternal(),
	}
}

func toUserDTOs(users []models.User) []UserDTO {
	out := make([]UserDTO, 0, len(users))
	for _, u := range users {
		out = append(out, toUserDTO(u))
	}
	return out
}

// BatchFailureDTO is one item of a batch that did not transition
type BatchFailureDTO struct {
	ID       uint                   `json:"id"`
	Motivo   services.FailureReason `json:"motivo" example:"already_delivered"`
	Mensagem string                 `json:"mensagem"`
}

// BatchReportDTO is the outcome of a batch delivery
type BatchReportDTO struct {
	LoteID    string            `json:"lote_id"`
	Entregues []uint            `json:"entregues"`
	Falhas    []BatchFailureDTO `json:"falhas"`
}

var reasonMessages = map[services.FailureReason]string{
	services.ReasonAlreadyDelivered: "Encomenda já foi entregue",
	services.ReasonNotFound:         "Encomenda não encontrada",
	services.ReasonValidation:       "Dados de entrega inválidos",
	services.ReasonTransport:        "Falha de comunicação com o banco de dados",
}

func toBatchReportDTO(r *services.BatchReport) BatchReportDTO {
	out := BatchReportDTO{
		LoteID:    r.BatchID,
		Entregues: r.Succeeded,
		Falhas:    make([]BatchFailureDTO, 0, len(r.Failed)),
	}
	for _, f := range r.Failed {
		out.Falhas = append(out.Falhas, BatchFailureDTO{
			ID:       f.ID,
			Motivo:   f.Reason,
			Mensagem: reasonMessages[f.Reason],
		})
	}
	return out
}
