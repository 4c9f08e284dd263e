package main

import (
	"net"
	"net/http"

	"github.com/gorilla/rpc"
	jsonrpc "github.com/gorilla/rpc/json"
	"github.com/rcrowley/go-metrics"

	"github.com/bitcoinfees/auctionsim/api"
	"github.com/bitcoinfees/auctionsim/sim"
)

type Service struct {
	Sim  *AuctionSim
	DLog *DebugLog
	Cfg  config
}

func (s *Service) ListenAndServe() error {
	var methods = map[string]string{
		"stop":      "Service.Stop",
		"status":    "Service.Status",
		"simulate":  "Service.Simulate",
		"recommend": "Service.Recommend",
		"snapshot":  "Service.Snapshot",
		"refresh":   "Service.Refresh",
		"setdebug":  "Service.SetDebug",
		"config":    "Service.Config",
		"metrics":   "Service.Metrics",
	}
	srv := rpc.NewServer()
	srv.RegisterCodec(jsonrpc.NewCodec(), "application/json")
	srv.RegisterService(s, "")
	srv.RegisterCustomNames(methods)
	http.Handle("/", srv)
	addr := net.JoinHostPort(s.Cfg.AppRPC.Host, s.Cfg.AppRPC.Port)
	s.DLog.Logger.Println("RPC server listening on", addr)
	return http.ListenAndServe(addr, nil)
}

func (s *Service) Stop(r *http.Request, args *struct{}, reply *struct{}) error {
	go s.Sim.Stop()
	return nil
}

func (s *Service) Status(r *http.Request, args *struct{}, reply *map[string]string) error {
	*reply = s.Sim.Status()
	return nil
}

func (s *Service) Simulate(r *http.Request, args *api.SimulateArgs, reply *sim.Result) error {
	result, err := s.Sim.Simulate(args.VSize, args.FeeRate)
	if err != nil {
		return err
	}
	*reply = *result
	return nil
}

func (s *Service) Recommend(r *http.Request, args *struct{}, reply *sim.Tiers) error {
	tiers, err := s.Sim.Recommend()
	if err != nil {
		return err
	}
	*reply = *tiers
	return nil
}

func (s *Service) Snapshot(r *http.Request, args *struct{}, reply *SnapshotSummary) error {
	summary, err := s.Sim.SnapshotSummary()
	if err != nil {
		return err
	}
	*reply = *summary
	return nil
}

func (s *Service) Refresh(r *http.Request, args *struct{}, reply *struct{}) error {
	return s.Sim.Refresh()
}

func (s *Service) SetDebug(r *http.Request, args *bool, reply *bool) error {
	s.DLog.SetDebug(*args)
	*reply = *args
	return nil
}

func (s *Service) Config(r *http.Request, args *struct{}, reply *interface{}) error {
	*reply = s.Cfg
	return nil
}

func (s *Service) Metrics(r *http.Request, args *struct{}, reply *metrics.Registry) error {
	*reply = metrics.DefaultRegistry
	return nil
}
