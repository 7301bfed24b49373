package config

type WorkerKeyStruct struct {
	PersistLeadsQueue string
}

var WorkerKey = &WorkerKeyStruct{
	PersistLeadsQueue: "persist_leads_queue",
}
