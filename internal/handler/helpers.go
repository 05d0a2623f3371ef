package handler

import (
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/Mdwaseel/batsdatacollection/internal/apierror"
	"github.com/Mdwaseel/batsdatacollection/internal/dto"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindFormJSONAndValidate decodes the named multipart form field as JSON and
// runs go-playground/validator tags. Returns false and writes the error
// response if anything fails — the caller should return immediately.
func bindFormJSONAndValidate(c *gin.Context, field string, req interface{}) bool {
	raw := c.PostForm(field)
	if raw == "" {
		c.JSON(http.StatusBadRequest, apierror.New("missing form field: "+field))
		return false
	}
	if err := json.Unmarshal([]byte(raw), req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid JSON: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// readUpload loads one multipart file into memory. Files are at most a few
// MiB (oversized ones are rejected downstream), so buffering is fine.
func readUpload(fh *multipart.FileHeader) (*dto.ImageUpload, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return &dto.ImageUpload{
		Data:        data,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Filename:    fh.Filename,
	}, nil
}
