package http

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/catalogadmin/internal/common"
	"github.com/dmitrijs2005/catalogadmin/internal/server/services"
	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation"
)

var errInvalidID = fmt.Errorf("%w: id must be a positive integer", common.ErrValidation)

func parseID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		return 0, errInvalidID
	}
	return id, nil
}

// decodeJSON reads a JSON body into v. An empty body leaves v untouched.
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return err
		}
		return fmt.Errorf("%w: malformed JSON body", common.ErrValidation)
	}
	return nil
}

func isMultipart(r *http.Request) bool {
	ct, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && ct == "multipart/form-data"
}

func (h *Handler) parseMultipart(r *http.Request) error {
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return err
		}
		return fmt.Errorf("%w: malformed multipart body", common.ErrValidation)
	}
	return nil
}

func (h *Handler) readFiles(r *http.Request, field string) ([]services.Upload, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	headers := r.MultipartForm.File[field]
	uploads := make([]services.Upload, 0, len(headers))
	for _, fh := range headers {
		u, err := h.readFile(fh)
		if err != nil {
			return nil, err
		}
		uploads = append(uploads, u)
	}
	return uploads, nil
}

func (h *Handler) readFile(fh *multipart.FileHeader) (services.Upload, error) {
	if fh.Size > h.maxUpload {
		return services.Upload{}, fmt.Errorf("%w: file %s exceeds %d bytes", common.ErrValidation, fh.Filename, h.maxUpload)
	}
	f, err := fh.Open()
	if err != nil {
		return services.Upload{}, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return services.Upload{}, fmt.Errorf("read upload: %w", err)
	}

	ct := fh.Header.Get("Content-Type")
	if ct == "" {
		ct = "image/jpeg"
	}
	return services.Upload{Data: data, ContentType: ct}, nil
}

// decodeBase64Image accepts raw base64 or a data URL. Raw payloads are
// assumed to be JPEG.
func (h *Handler) decodeBase64Image(s string) (services.Upload, error) {
	ct := "image/jpeg"
	if rest, ok := strings.CutPrefix(s, "data:"); ok {
		meta, payload, found := strings.Cut(rest, ",")
		if !found {
			return services.Upload{}, fmt.Errorf("%w: malformed data URL", common.ErrValidation)
		}
		if m := strings.TrimSuffix(meta, ";base64"); m != "" {
			ct = m
		}
		s = payload
	}

	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return services.Upload{}, fmt.Errorf("%w: invalid base64 image", common.ErrValidation)
	}
	if int64(len(data)) > h.maxUpload {
		return services.Upload{}, fmt.Errorf("%w: image exceeds %d bytes", common.ErrValidation, h.maxUpload)
	}
	return services.Upload{Data: data, ContentType: ct}, nil
}

func (h *Handler) decodeBase64Images(list []string) ([]services.Upload, error) {
	uploads := make([]services.Upload, 0, len(list))
	for _, s := range list {
		if s == "" {
			continue
		}
		u, err := h.decodeBase64Image(s)
		if err != nil {
			return nil, err
		}
		uploads = append(uploads, u)
	}
	return uploads, nil
}

func optionalNumber[T any](form, field string, parse func(string) (T, error)) (*T, error) {
	if strings.TrimSpace(form) == "" {
		return nil, nil
	}
	v, err := parse(strings.TrimSpace(form))
	if err != nil {
		return nil, validation.Errors{field: fmt.Errorf("%s must be a number", field)}
	}
	return &v, nil
}

func parseFloat(s string) (float64, error) { return strconv.ParseFloat(s, 64) }

// readProduct parses a product from multipart or JSON and validates it.
func (h *Handler) readProduct(r *http.Request) (services.ProductInput, error) {
	var (
		req     productRequest
		uploads []services.Upload
	)

	if isMultipart(r) {
		if err := h.parseMultipart(r); err != nil {
			return services.ProductInput{}, err
		}
		req.Name = r.FormValue("name")

		var err error
		if req.Price, err = optionalNumber(r.FormValue("price"), "price", parseFloat); err != nil {
			return services.ProductInput{}, err
		}
		if req.Stock, err = optionalNumber(r.FormValue("stock"), "stock", strconv.Atoi); err != nil {
			return services.ProductInput{}, err
		}
		req.ImagesToAdd = parseStringList(r.FormValue("imagesToAdd"))
		req.ImagesToRemove = parseStringList(r.FormValue("imagesToRemove"))

		if uploads, err = h.readFiles(r, "images"); err != nil {
			return services.ProductInput{}, err
		}
	} else if err := decodeJSON(r, &req); err != nil {
		return services.ProductInput{}, err
	}

	if err := req.Validate(); err != nil {
		return services.ProductInput{}, err
	}

	b64, err := h.decodeBase64Images(req.ImagesToAdd)
	if err != nil {
		return services.ProductInput{}, err
	}

	return services.ProductInput{
		Name:           req.Name,
		Price:          *req.Price,
		Stock:          req.Stock,
		Uploads:        append(uploads, b64...),
		ImagesToRemove: req.ImagesToRemove,
	}, nil
}

// readSingleImage returns the optional "image" file or base64 field.
func (h *Handler) readSingleImage(r *http.Request, b64 string) (*services.Upload, error) {
	if isMultipart(r) {
		files, err := h.readFiles(r, "image")
		if err != nil {
			return nil, err
		}
		if len(files) > 0 {
			return &files[0], nil
		}
	}
	if b64 == "" {
		return nil, nil
	}
	u, err := h.decodeBase64Image(b64)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (h *Handler) readInstrument(r *http.Request) (services.InstrumentInput, error) {
	var req instrumentRequest
	if isMultipart(r) {
		if err := h.parseMultipart(r); err != nil {
			return services.InstrumentInput{}, err
		}
		req.Name = r.FormValue("name")
		req.Description = r.FormValue("description")
		req.Image = r.FormValue("image")
	} else if err := decodeJSON(r, &req); err != nil {
		return services.InstrumentInput{}, err
	}

	if err := req.Validate(); err != nil {
		return services.InstrumentInput{}, err
	}

	img, err := h.readSingleImage(r, req.Image)
	if err != nil {
		return services.InstrumentInput{}, err
	}
	return services.InstrumentInput{Name: req.Name, Description: req.Description, Image: img}, nil
}

func (h *Handler) readProfessor(r *http.Request) (services.ProfessorInput, error) {
	var req professorRequest
	if isMultipart(r) {
		if err := h.parseMultipart(r); err != nil {
			return services.ProfessorInput{}, err
		}
		req.Name = r.FormValue("name")
		req.Bio = r.FormValue("bio")
		req.Instrument = r.FormValue("instrument")
		req.Image = r.FormValue("image")
	} else if err := decodeJSON(r, &req); err != nil {
		return services.ProfessorInput{}, err
	}

	if err := req.Validate(); err != nil {
		return services.ProfessorInput{}, err
	}

	img, err := h.readSingleImage(r, req.Image)
	if err != nil {
		return services.ProfessorInput{}, err
	}
	return services.ProfessorInput{Name: req.Name, Bio: req.Bio, Instrument: req.Instrument, Photo: img}, nil
}
