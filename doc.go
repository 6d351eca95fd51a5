// Package qaprep preprocesses question-answering corpora (SQuAD, NewsQA)
// into aligned sentence/question/answer files and answers questions with an
// exported encoder/decoder model over those corpora.
//
// # Preprocessing
//
//	cfg, err := config.Load("qaprep.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	pipe, err := qaprep.NewPipeline(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := pipe.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// Each corpus split produces three parallel files (<split>.sentence,
// <split>.question, <split>.answer) where line N across the files refers to
// one example; merging shuffles all corpora with a single shared permutation
// so that alignment survives. After merging, Pipeline.BuildVocab produces the
// vocabulary file the Generator loads.
//
// A fatal error aborts the run and leaves partial output files on disk;
// treat an aborted run's output directory as incomplete.
//
// # Answer generation
//
//	gen, err := qaprep.NewGenerator("model.onnx", "vocab.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer gen.Close()
//
//	answer, err := gen.Answer(ctx, "Dogs run everywhere.", "What runs everywhere?")
package qaprep
