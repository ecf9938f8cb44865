package composer

import "go.trai.ch/jlc/internal/core/domain"

const initTemplate = `// Generated by jlc. Links runtime start-up into the shared library.

#include "uv.h"
#include "julia.h"

void init_runtime(void)
{
    libsupport_init();
    jl_options.image_file = ` + domain.LibNameMacro + `;
    julia_init(JL_IMAGE_JULIA_HOME);
}

int exit_runtime(int retcode)
{
    jl_atexit_hook(retcode);
    return retcode;
}
`

// InitSource returns the C source of the runtime initialisation entry points
// init_runtime and exit_runtime. It expects the library name macro to be
// defined on the compiler command line.
func InitSource() []byte {
	return []byte(initTemplate)
}
