package service

import (
	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"

	"secretaria/cmd/internal/contract"
	"secretaria/cmd/internal/domain/entity"
	"secretaria/cmd/internal/domain/policy"
	"secretaria/cmd/internal/listing"
	"secretaria/cmd/internal/utils"
	"secretaria/cmd/internal/utils/apierror"
)

const clientDefaultSort = "created_at"

type ClientRepository interface {
	FindAllByUnidade(unidadeID int64) ([]*entity.Client, error)
	FindByID(id int64) (*entity.Client, error)
	Save(client *entity.Client) error
}

var clientSorts = map[string]listing.Comparator[*entity.Client]{
	"nome":       listing.CompareStrings(func(c *entity.Client) string { return c.Nome }),
	"status":     listing.CompareStrings(func(c *entity.Client) string { return c.Status }),
	"origem":     listing.CompareStrings(func(c *entity.Client) string { return c.Origem }),
	"created_at": listing.CompareInts(func(c *entity.Client) int64 { return c.CreatedAt }),
}

type DefaultClientService struct {
	ClientRepo ClientRepository
	Validate   *validator.Validate
}

func NewClientService(repo ClientRepository, validate *validator.Validate) *DefaultClientService {
	return &DefaultClientService{
		ClientRepo: repo,
		Validate:   validate,
	}
}

// List is open to every authenticated user of the unidade. Removed leads only
// show up with mostrar_inativos.
func (c *DefaultClientService) List(actor *entity.User, q *contract.ClientQuery) (*contract.PageResponse[*contract.ClientResponse], apierror.ErrorResponse) {
	if actor == nil {
		return nil, apierror.UnauthorizedError
	}

	clients, err := c.ClientRepo.FindAllByUnidade(actor.UnidadeID)
	if err != nil {
		log.Errorf("failed to fetch clients: %v", err)
		return nil, apierror.InternalServerError
	}

	sortKey := q.Sort
	cmp, ok := clientSorts[sortKey]
	if !ok {
		sortKey = clientDefaultSort
		cmp = clientSorts[sortKey]
	}

	// newest leads first unless asked otherwise
	dir := listing.ParseDirection(q.Dir, listing.Desc)
	if q.Sort != "" && q.Dir == "" && sortKey != clientDefaultSort {
		dir = listing.Asc
	}

	var status, origem *string
	if q.Status != "" {
		status = &q.Status
	}
	if q.Origem != "" {
		origem = &q.Origem
	}

	view := listing.NewView[*entity.Client]()
	view.SetFilter("busca", listing.Contains(q.Busca,
		func(c *entity.Client) string { return c.Nome },
		func(c *entity.Client) string { return c.Telefone },
	))
	view.SetFilter("status", listing.Equals(status, func(c *entity.Client) string { return c.Status }))
	view.SetFilter("origem", listing.Equals(origem, func(c *entity.Client) string { return c.Origem }))
	view.SetFilter("inativos", listing.Toggle(q.MostrarInativos, func(c *entity.Client) bool { return !c.Active }))
	view.SetSort(sortKey, cmp, dir)
	view.SetPage(q.Page)

	page := view.Apply(clients)
	return contract.NewPageResponse(mapPage(page, toClientResponse), view.SortKey(), view.Direction()), nil
}

func (c *DefaultClientService) Get(actor *entity.User, id int64) (*contract.ClientResponse, apierror.ErrorResponse) {
	client, apierr := c.find(actor, id)
	if apierr != nil {
		return nil, apierr
	}
	return toClientResponse(client), nil
}

func (c *DefaultClientService) Update(actor *entity.User, id int64, req *contract.UpdateClientRequest) (*contract.ClientResponse, apierror.ErrorResponse) {
	if err := policy.Require(actor, entity.PermissionManageClients); err != nil {
		return nil, err
	}

	utils.Sanitize(req)
	if valerr := c.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	client, apierr := c.findActive(actor, id)
	if apierr != nil {
		return nil, apierr
	}

	if req.Nome != nil {
		client.Nome = *req.Nome
	}
	if req.Telefone != nil {
		client.Telefone = *req.Telefone
	}
	if req.Origem != nil {
		client.Origem = *req.Origem
	}
	if req.Status != nil {
		client.Status = *req.Status
	}
	return c.save(client)
}

// Reset sends the lead back to the start of the pipeline.
func (c *DefaultClientService) Reset(actor *entity.User, id int64) (*contract.ClientResponse, apierror.ErrorResponse) {
	if err := policy.Require(actor, entity.PermissionManageClients); err != nil {
		return nil, err
	}

	client, apierr := c.findActive(actor, id)
	if apierr != nil {
		return nil, apierr
	}

	client.Status = entity.StatusNovoCadastro
	return c.save(client)
}

// Delete is a soft delete and succeeds again on an already removed lead.
func (c *DefaultClientService) Delete(actor *entity.User, id int64) apierror.ErrorResponse {
	if err := policy.Require(actor, entity.PermissionManageClients); err != nil {
		return err
	}

	client, apierr := c.find(actor, id)
	if apierr != nil {
		return apierr
	}

	if client.DeletedAt > 0 {
		return nil
	}

	client.Active = false
	client.DeletedAt = utils.NowUTC()
	_, apierr = c.save(client)
	return apierr
}

func (c *DefaultClientService) save(client *entity.Client) (*contract.ClientResponse, apierror.ErrorResponse) {
	client.UpdatedAt = utils.NowUTC()
	if err := c.ClientRepo.Save(client); err != nil {
		log.Errorf("failed to save client %d: %v", client.ID, err)
		return nil, apierror.InternalServerError
	}
	return toClientResponse(client), nil
}

func (c *DefaultClientService) find(actor *entity.User, id int64) (*entity.Client, apierror.ErrorResponse) {
	if actor == nil {
		return nil, apierror.UnauthorizedError
	}

	client, err := c.ClientRepo.FindByID(id)
	if err != nil {
		log.Errorf("failed to fetch client %d: %v", id, err)
		return nil, apierror.InternalServerError
	}

	if client == nil {
		return nil, apierror.NotFoundError
	}

	if apierr := policy.SameUnidade(actor, client.UnidadeID); apierr != nil {
		return nil, apierr
	}
	return client, nil
}

func (c *DefaultClientService) findActive(actor *entity.User, id int64) (*entity.Client, apierror.ErrorResponse) {
	client, apierr := c.find(actor, id)
	if apierr != nil {
		return nil, apierr
	}

	if client.DeletedAt > 0 {
		return nil, apierror.NotFoundError
	}
	return client, nil
}
