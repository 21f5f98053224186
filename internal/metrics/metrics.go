package metrics

const Namespace = "mdstore"
