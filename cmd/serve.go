package cmd

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/jsphweid/engraver/config"
	"github.com/jsphweid/engraver/constants"
	"github.com/jsphweid/engraver/db"
	"github.com/jsphweid/engraver/logger"
	"github.com/jsphweid/engraver/model"
	"github.com/jsphweid/engraver/notation"
	"github.com/jsphweid/engraver/pipeline"
	"github.com/pkg/errors"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"k8s.io/utils/clock"
)

var storeFlag string

func init() {
	serveCmd.Flags().StringVar(&storeFlag, "store", "memory", "where engraved scores are kept: memory or dynamo")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "serves",
	Long:  `Serves the engraving pipeline over http`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

// ScoreStore keeps engraved scores by id.
type ScoreStore interface {
	PutScore(res model.EngraveResponse) error
	GetScore(id string) (model.EngraveResponse, bool, error)
}

type Server struct {
	cfg   config.Config
	store ScoreStore
	clock clock.Clock
}

func NewServer(cfg config.Config, store ScoreStore, cl clock.Clock) *Server {
	return &Server{cfg: cfg, store: store, clock: cl}
}

func (s *Server) Router() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/engrave", s.HandleEngrave).Methods("POST")
	router.HandleFunc("/scores/{id}", s.HandleGetScore).Methods("GET")
	router.HandleFunc("/durations/{beats}", s.HandleDuration).Methods("GET")

	c := cors.New(cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(router)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.GetProjectLogger().Warnf("Could not write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, model.ErrorResponse{Error: err.Error()})
}

func (s *Server) HandleEngrave(w http.ResponseWriter, r *http.Request) {
	start := s.clock.Now()

	var input model.EngraveRequestBody
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, errors.Wrap(err, "could not decode request body"))
		return
	}

	res, err := pipeline.Engrave(input, s.cfg)
	if err != nil {
		var invalid *pipeline.ValidationError
		if errors.As(err, &invalid) {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		logger.GetProjectLogger().Errorf("Could not engrave: %v", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	if err := s.store.PutScore(res); err != nil {
		logger.GetProjectLogger().Errorf("Could not store score %v: %v", res.ScoreId, err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	elapsed := s.clock.Since(start)
	w.Header().Set("X-Engrave-Duration", elapsed.String())
	logger.GetProjectLogger().WithFields(logrus.Fields{
		"score_id": res.ScoreId,
		"notes":    len(input.Notes),
		"elapsed":  elapsed,
	}).Info("engraved")
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) HandleGetScore(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	res, found, err := s.store.GetScore(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, errors.Errorf("no score %v", id))
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) HandleDuration(w http.ResponseWriter, r *http.Request) {
	beats, err := strconv.ParseFloat(mux.Vars(r)["beats"], 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.Wrap(err, "beats must be a number"))
		return
	}
	d, ok := notation.DurationSymbol(beats)
	if !ok {
		writeError(w, http.StatusNotFound, errors.Errorf("%v beats has no single note value", beats))
		return
	}
	writeJSON(w, http.StatusOK, model.DurationResponse{Beats: beats, Name: d.Name, Dotted: d.Dotted})
}

func newStore(kind string) (ScoreStore, error) {
	switch kind {
	case "memory":
		return db.NewMemoryStore(), nil
	case "dynamo":
		return db.NewStore(constants.GetDynamoEndpoint(), constants.GetDynamoTable())
	default:
		return nil, errors.Errorf("unknown store %q", kind)
	}
}

func serve() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := newStore(storeFlag)
	if err != nil {
		return err
	}

	server := NewServer(cfg, store, clock.RealClock{})
	addr := constants.GetListenAddr()
	logger.GetProjectLogger().Infof("Serving on %v", addr)
	return http.ListenAndServe(addr, server.Router())
}
