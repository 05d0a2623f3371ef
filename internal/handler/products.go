package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Mdwaseel/batsdatacollection/internal/apierror"
	"github.com/Mdwaseel/batsdatacollection/internal/dto"
	"github.com/Mdwaseel/batsdatacollection/internal/service"
)

type ProductsHandler struct{ svc service.ProductService }

func NewProductsHandler(svc service.ProductService) *ProductsHandler {
	return &ProductsHandler{svc: svc}
}

// Create accepts a multipart form: a `product` JSON part plus optional file
// parts main_image, gallery_images (repeated), variation_image_{i},
// edition_image and laser_image.
func (h *ProductsHandler) Create(c *gin.Context) {
	var req dto.CreateProductRequest
	if !bindFormJSONAndValidate(c, "product", &req) {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid multipart form: "+err.Error()))
		return
	}

	images := dto.ImageSet{Variations: make(map[int]*dto.ImageUpload)}
	readOne := func(field string) *dto.ImageUpload {
		files := form.File[field]
		if len(files) == 0 {
			return nil
		}
		up, err := readUpload(files[0])
		if err != nil {
			log.Warn().Err(err).Str("field", field).Msg("could not read upload")
			return nil
		}
		return up
	}

	images.Main = readOne("main_image")
	for _, fh := range form.File["gallery_images"] {
		up, err := readUpload(fh)
		if err != nil {
			log.Warn().Err(err).Str("field", "gallery_images").Msg("could not read upload")
			continue
		}
		images.Gallery = append(images.Gallery, *up)
	}
	for i := range req.Variations {
		images.Variations[i] = readOne(fmt.Sprintf("variation_image_%d", i))
	}
	images.Edition = readOne("edition_image")
	images.Laser = readOne("laser_image")

	resp, err := h.svc.Create(c.Request.Context(), req, images)
	if err != nil {
		c.JSON(http.StatusBadGateway, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ProductsHandler) List(c *gin.Context) {
	resp, err := h.svc.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProductsHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, apierror.New("query parameter q is required"))
		return
	}
	resp, err := h.svc.Search(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusBadGateway, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete implements the two-step confirm: the first call answers 202 with
// confirm_required, the second call within the window deletes and answers 200.
func (h *ProductsHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	outcome, err := h.svc.Delete(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusBadGateway, apierror.New(err.Error()))
		return
	}
	if outcome.ConfirmRequired {
		c.JSON(http.StatusAccepted, outcome)
		return
	}
	c.JSON(http.StatusOK, outcome)
}
