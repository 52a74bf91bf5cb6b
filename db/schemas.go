package db

var schema = `
CREATE TABLE IF NOT EXISTS reservation_log (
    submission_id UUID PRIMARY KEY,
    user_id INT NOT NULL,
    event_id VARCHAR(64),
    casa_da_reserva VARCHAR(255) NOT NULL,
    quantidade_pessoas INT NOT NULL,
    mesas VARCHAR(64) NOT NULL,
    data_da_reserva VARCHAR(10) NOT NULL,
    submitted_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS read_model_ops_reservations (
    submission_id UUID PRIMARY KEY,
    payload JSONB NOT NULL
);

CREATE TABLE IF NOT EXISTS events (
    event_id UUID PRIMARY KEY,
    published_at TIMESTAMP NOT NULL,
    event_name VARCHAR(255) NOT NULL,
    event_payload JSONB NOT NULL
);
`
